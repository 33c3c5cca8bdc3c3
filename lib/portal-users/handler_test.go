package portalusershandler

import (
	"bytes"
	"testing"

	portaluserstore "employee-portal-backend/lib/portal-users/store"
	"employee-portal-backend/models"
	usersapimodels "employee-portal-backend/models/api/users"
	dbmodels "employee-portal-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsers(t *testing.T, roleConflictPrompt bool) (*impl, *gorm.DB) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&dbmodels.PortalUser{}, &dbmodels.Request{}, &dbmodels.Approval{}))
	return newInstance(gdb, roleConflictPrompt), gdb
}

func TestCreateUser(t *testing.T) {
	t.Run("new record", func(t *testing.T) {
		handler, _ := setupUsers(t, true)

		view, err := handler.CreateUser(usersapimodels.CreateUser{
			Email: "Anna@Example.com", FullName: "Anna Admin", Role: "hr",
		})
		require.NoError(t, err)
		require.Equal(t, "anna@example.com", view.Email)
		require.Equal(t, "hr", view.Role)
	})

	t.Run("role change needs confirmation when the prompt is on", func(t *testing.T) {
		handler, _ := setupUsers(t, true)
		_, err := handler.CreateUser(usersapimodels.CreateUser{
			Email: "anna@example.com", FullName: "Anna", Role: "hr",
		})
		require.NoError(t, err)

		_, err = handler.CreateUser(usersapimodels.CreateUser{
			Email: "anna@example.com", FullName: "Anna", Role: "it",
		})
		require.Equal(t, models.CodeAlreadyExists, models.AsAPIError(err).Code)

		view, err := handler.CreateUser(usersapimodels.CreateUser{
			Email: "anna@example.com", FullName: "Anna", Role: "it", ReplaceRole: true,
		})
		require.NoError(t, err)
		require.Equal(t, "it", view.Role)
	})

	t.Run("role change is silent when the prompt is off", func(t *testing.T) {
		handler, _ := setupUsers(t, false)
		_, err := handler.CreateUser(usersapimodels.CreateUser{
			Email: "anna@example.com", FullName: "Anna", Role: "hr",
		})
		require.NoError(t, err)

		view, err := handler.CreateUser(usersapimodels.CreateUser{
			Email: "anna@example.com", FullName: "Anna", Role: "employee",
		})
		require.NoError(t, err)
		require.Equal(t, "employee", view.Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		handler, _ := setupUsers(t, true)
		_, err := handler.CreateUser(usersapimodels.CreateUser{
			Email: "anna@example.com", FullName: "Anna", Role: "manager",
		})
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})
}

func TestDeleteUser(t *testing.T) {
	handler, gdb := setupUsers(t, true)
	view, err := handler.CreateUser(usersapimodels.CreateUser{
		Email: "anna@example.com", FullName: "Anna", Role: "employee",
	})
	require.NoError(t, err)

	rec := dbmodels.Request{Type: models.ResignationType, UniqueID: "REQ-1", UserID: view.ID}
	require.NoError(t, gdb.Omit("Approvals").Create(&rec).Error)
	require.NoError(t, gdb.Create(&dbmodels.Approval{
		RequestID: rec.ID, Department: models.HrDepartment, Required: true, Status: models.AStatePending,
	}).Error)

	require.NoError(t, handler.DeleteUser(view.ID))

	user, err := portaluserstore.NewInstance(gdb).GetByID(view.ID)
	require.NoError(t, err)
	require.Nil(t, user)

	var requestCount, approvalCount int64
	require.NoError(t, gdb.Model(&dbmodels.Request{}).Count(&requestCount).Error)
	require.NoError(t, gdb.Model(&dbmodels.Approval{}).Count(&approvalCount).Error)
	require.Zero(t, requestCount)
	require.Zero(t, approvalCount)
}

func TestBulkImportCSV(t *testing.T) {
	t.Run("invalid rows are skipped silently", func(t *testing.T) {
		handler, gdb := setupUsers(t, true)
		file := []byte("email,fullname,role\n" +
			"anna@example.com,Anna Admin,hr\n" +
			"not-an-email,Broken Row,hr\n" +
			"boris@example.com,Boris Employee,manager\n" +
			"clara@example.com,Clara IT,it\n" +
			"dora@example.com,,employee\n")

		result, err := handler.BulkImport("roster.csv", file)
		require.NoError(t, err)
		require.Equal(t, 2, result.Added)

		var count int64
		require.NoError(t, gdb.Model(&dbmodels.PortalUser{}).Count(&count).Error)
		require.EqualValues(t, 2, count)
	})

	t.Run("bulk overwrites existing records without prompting", func(t *testing.T) {
		handler, _ := setupUsers(t, true)
		_, err := handler.CreateUser(usersapimodels.CreateUser{
			Email: "anna@example.com", FullName: "Anna", Role: "hr",
		})
		require.NoError(t, err)

		result, err := handler.BulkImport("roster.csv", []byte("email,fullname,role\nanna@example.com,Anna A.,it\n"))
		require.NoError(t, err)
		require.Equal(t, 1, result.Added)

		list, _, err := handler.GetList(1, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "it", list[0].Role)
		require.Equal(t, "Anna A.", list[0].FullName)
	})

	t.Run("header must match exactly", func(t *testing.T) {
		handler, _ := setupUsers(t, true)
		for _, header := range []string{
			"email,name,role",
			"email,fullname",
			"email,fullname,role,extra",
		} {
			_, err := handler.BulkImport("roster.csv", []byte(header+"\nanna@example.com,Anna,hr\n"))
			require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code, header)
		}
	})

	t.Run("header is case-insensitive", func(t *testing.T) {
		handler, _ := setupUsers(t, true)
		result, err := handler.BulkImport("roster.csv", []byte("Email,FullName,Role\nanna@example.com,Anna,hr\n"))
		require.NoError(t, err)
		require.Equal(t, 1, result.Added)
	})

	t.Run("unsupported format", func(t *testing.T) {
		handler, _ := setupUsers(t, true)
		_, err := handler.BulkImport("roster.pdf", []byte("whatever"))
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("a failed row rolls the whole file back", func(t *testing.T) {
		handler, gdb := setupUsers(t, true)
		require.NoError(t, gdb.Callback().Create().Before("gorm:create").Register("fail_boris", func(tx *gorm.DB) {
			if rec, ok := tx.Statement.Dest.(*dbmodels.PortalUser); ok && rec.Email == "boris@example.com" {
				tx.AddError(errors.New("storage failed"))
			}
		}))

		file := []byte("email,fullname,role\n" +
			"anna@example.com,Anna,hr\n" +
			"boris@example.com,Boris,it\n")
		result, err := handler.BulkImport("roster.csv", file)
		require.Error(t, err)
		require.Zero(t, result.Added)

		var count int64
		require.NoError(t, gdb.Model(&dbmodels.PortalUser{}).Count(&count).Error)
		require.Zero(t, count)
	})
}

func TestBulkImportXLSX(t *testing.T) {
	handler, _ := setupUsers(t, true)

	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	rows := [][]string{
		{"email", "fullname", "role"},
		{"anna@example.com", "Anna Admin", "admin"},
		{"broken", "Broken Row", "hr"},
		{"boris@example.com", "Boris Employee", "employee"},
	}
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		require.NoError(t, err)
		require.NoError(t, book.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, book.Write(&buf))

	result, err := handler.BulkImport("roster.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 2, result.Added)
}
