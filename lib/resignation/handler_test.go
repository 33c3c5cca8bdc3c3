package resignationhandler

import (
	"testing"
	"time"

	approvalhandler "employee-portal-backend/lib/approval"
	"employee-portal-backend/lib/eligibility"
	"employee-portal-backend/models"
	requestapimodels "employee-portal-backend/models/api/request"
	dbmodels "employee-portal-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandler(t *testing.T) (*impl, *gorm.DB) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&dbmodels.Request{}, &dbmodels.Approval{}))
	return newInstance(gdb, eligibility.DefaultWindows()), gdb
}

func validPayload() requestapimodels.CreateResignation {
	return requestapimodels.CreateResignation{
		Reason:             "relocating",
		LastWorkingDay:     time.Now().Add(30 * 24 * time.Hour).Format("2006-01-02"),
		ResignationType:    "voluntary",
		NoticeAcknowledged: true,
	}
}

func TestCreate(t *testing.T) {
	t.Run("creates the request with a pending HR approval", func(t *testing.T) {
		handler, gdb := setupHandler(t)

		view, err := handler.Create("user-1", validPayload())
		require.NoError(t, err)
		require.NotEmpty(t, view.ID)
		require.NotEmpty(t, view.UniqueID)

		var approval dbmodels.Approval
		require.NoError(t, gdb.Where("request_id = ?", view.ID).First(&approval).Error)
		require.Equal(t, models.HrDepartment, approval.Department)
		require.True(t, approval.Required)
		require.Equal(t, models.AStatePending, approval.Status)
	})

	t.Run("blocked while the previous one is pending", func(t *testing.T) {
		handler, _ := setupHandler(t)

		_, err := handler.Create("user-1", validPayload())
		require.NoError(t, err)

		_, err = handler.Create("user-1", validPayload())
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("allowed again once HR decides", func(t *testing.T) {
		handler, gdb := setupHandler(t)

		view, err := handler.Create("user-1", validPayload())
		require.NoError(t, err)

		decider := approvalhandler.NewHandlerWithTx(gdb)
		require.NoError(t, decider.Decide(view.ID, models.HrDepartment, models.AStateRejected, "reviewer-1"))

		_, err = handler.Create("user-1", validPayload())
		require.NoError(t, err)
	})

	t.Run("notice must be acknowledged", func(t *testing.T) {
		handler, _ := setupHandler(t)
		payload := validPayload()
		payload.NoticeAcknowledged = false

		_, err := handler.Create("user-1", payload)
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("last working day cannot be in the past", func(t *testing.T) {
		handler, _ := setupHandler(t)
		payload := validPayload()
		payload.LastWorkingDay = "2020-01-01"

		_, err := handler.Create("user-1", payload)
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})
}

func TestEligibility(t *testing.T) {
	handler, _ := setupHandler(t)

	view, err := handler.Eligibility("user-1")
	require.NoError(t, err)
	require.True(t, view.Eligible)

	_, err = handler.Create("user-1", validPayload())
	require.NoError(t, err)

	view, err = handler.Eligibility("user-1")
	require.NoError(t, err)
	require.False(t, view.Eligible)
}

func TestListOwn(t *testing.T) {
	handler, _ := setupHandler(t)

	_, err := handler.Create("user-1", validPayload())
	require.NoError(t, err)

	list, err := handler.ListOwn("user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = handler.ListOwn("user-2")
	require.NoError(t, err)
	require.Empty(t, list)
}
