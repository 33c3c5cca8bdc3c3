package eligibility

import (
	"testing"
	"time"

	"employee-portal-backend/models"
	dbmodels "employee-portal-backend/models/db"

	"github.com/stretchr/testify/require"
)

func applicationAt(created time.Time, status models.ApprovalState) *dbmodels.Request {
	rec := dbmodels.Request{
		Type: models.JobApplicationType,
		Approvals: []dbmodels.Approval{
			{Department: models.HrDepartment, Required: true, Status: status},
		},
	}
	rec.CreatedAt = created
	return &rec
}

func TestReapply(t *testing.T) {
	w := DefaultWindows()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("no prior application", func(t *testing.T) {
		result := w.Reapply(nil, now)
		require.True(t, result.Eligible)
		require.Nil(t, result.NextEligibleAt)
	})

	t.Run("rejected inside the window", func(t *testing.T) {
		created := now.Add(-13 * 24 * time.Hour)
		result := w.Reapply(applicationAt(created, models.AStateRejected), now)
		require.False(t, result.Eligible)
		require.NotNil(t, result.NextEligibleAt)
		require.Equal(t, created.Add(DefaultReapplyWindow), *result.NextEligibleAt)
	})

	t.Run("pending inside the window", func(t *testing.T) {
		created := now.Add(-time.Hour)
		result := w.Reapply(applicationAt(created, models.AStatePending), now)
		require.False(t, result.Eligible)
	})

	t.Run("exactly at the window boundary", func(t *testing.T) {
		created := now.Add(-DefaultReapplyWindow)
		result := w.Reapply(applicationAt(created, models.AStateRejected), now)
		require.True(t, result.Eligible)
	})

	t.Run("past the window", func(t *testing.T) {
		created := now.Add(-15 * 24 * time.Hour)
		result := w.Reapply(applicationAt(created, models.AStateRejected), now)
		require.True(t, result.Eligible)
	})

	t.Run("accepted closes reapplication for good", func(t *testing.T) {
		created := now.Add(-100 * 24 * time.Hour)
		result := w.Reapply(applicationAt(created, models.AStateAccepted), now)
		require.False(t, result.Eligible)
		require.Nil(t, result.NextEligibleAt)
	})

	t.Run("missing approval row counts as pending", func(t *testing.T) {
		rec := &dbmodels.Request{Type: models.JobApplicationType}
		rec.CreatedAt = now.Add(-time.Hour)
		result := w.Reapply(rec, now)
		require.False(t, result.Eligible)
	})
}

func TestExceptionRequest(t *testing.T) {
	w := DefaultWindows()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("no prior request", func(t *testing.T) {
		result := w.ExceptionRequest(nil, now)
		require.True(t, result.Eligible)
	})

	t.Run("inside the cooldown regardless of outcome", func(t *testing.T) {
		created := now.Add(-23 * time.Hour)
		rec := applicationAt(created, models.AStateAccepted)
		rec.Type = models.ExceptionRequestType
		result := w.ExceptionRequest(rec, now)
		require.False(t, result.Eligible)
		require.Equal(t, created.Add(DefaultExceptionCooldown), *result.NextEligibleAt)
	})

	t.Run("exactly at the cooldown boundary", func(t *testing.T) {
		created := now.Add(-DefaultExceptionCooldown)
		rec := applicationAt(created, models.AStatePending)
		rec.Type = models.ExceptionRequestType
		result := w.ExceptionRequest(rec, now)
		require.True(t, result.Eligible)
	})
}

func TestResignation(t *testing.T) {
	w := DefaultWindows()

	t.Run("no prior request", func(t *testing.T) {
		result := w.Resignation(nil)
		require.True(t, result.Eligible)
	})

	t.Run("pending blocks resubmission", func(t *testing.T) {
		rec := applicationAt(time.Now().Add(-time.Hour), models.AStatePending)
		rec.Type = models.ResignationType
		result := w.Resignation(rec)
		require.False(t, result.Eligible)
		require.Nil(t, result.NextEligibleAt)
	})

	t.Run("decided request frees resubmission immediately", func(t *testing.T) {
		rec := applicationAt(time.Now().Add(-time.Minute), models.AStateRejected)
		rec.Type = models.ResignationType
		result := w.Resignation(rec)
		require.True(t, result.Eligible)
	})
}
