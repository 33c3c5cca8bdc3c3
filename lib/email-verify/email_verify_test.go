package emailverify

import (
	"regexp"
	"testing"
	"time"

	emailverifystore "employee-portal-backend/lib/email-verify/store"
	"employee-portal-backend/lib/smtp"
	"employee-portal-backend/models"
	dbmodels "employee-portal-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeSMTP struct {
	lastTo      string
	lastMessage string
	sendCount   int
	fail        bool
}

func (f *fakeSMTP) SendEMail(from, to, message, subject string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.lastTo = to
	f.lastMessage = message
	f.sendCount++
	return nil
}

func (f *fakeSMTP) IsConfigured() bool {
	return true
}

var codePattern = regexp.MustCompile(`\d{6}`)

func setupVerify(t *testing.T, rateLimited bool, burst int) (*impl, *fakeSMTP, *gorm.DB) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&dbmodels.PortalUser{}, &dbmodels.EmailVerify{}))

	mail := &fakeSMTP{}
	smtp.Instance = mail
	return newInstance(gdb, "portal@example.com", 10*time.Minute, rateLimited, burst), mail, gdb
}

func TestSendVerifyCode(t *testing.T) {
	t.Run("code reaches the mailbox", func(t *testing.T) {
		handler, mail, _ := setupVerify(t, false, 0)

		require.NoError(t, handler.SendVerifyCode("new@example.com"))
		require.Equal(t, "new@example.com", mail.lastTo)
		require.Regexp(t, codePattern, mail.lastMessage)
	})

	t.Run("empty email", func(t *testing.T) {
		handler, _, _ := setupVerify(t, false, 0)

		err := handler.SendVerifyCode("  ")
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("record keyed by account id for a known user", func(t *testing.T) {
		handler, _, gdb := setupVerify(t, false, 0)
		user := dbmodels.PortalUser{Email: "known@example.com", FullName: "Known User", Role: models.EmployeeRole}
		require.NoError(t, gdb.Create(&user).Error)

		require.NoError(t, handler.SendVerifyCode("known@example.com"))
		rec, err := emailverifystore.NewInstance(gdb).GetByKey(user.ID)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "known@example.com", rec.Email)
	})

	t.Run("resend replaces the stored code", func(t *testing.T) {
		handler, mail, _ := setupVerify(t, false, 0)

		require.NoError(t, handler.SendVerifyCode("new@example.com"))
		first := codePattern.FindString(mail.lastMessage)
		require.NoError(t, handler.SendVerifyCode("new@example.com"))
		second := codePattern.FindString(mail.lastMessage)

		if first != second {
			err := handler.VerifyCode("new@example.com", first)
			require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
		}
		require.NoError(t, handler.VerifyCode("new@example.com", second))
	})

	t.Run("rate limit caps the burst", func(t *testing.T) {
		handler, mail, _ := setupVerify(t, true, 2)

		require.NoError(t, handler.SendVerifyCode("new@example.com"))
		require.NoError(t, handler.SendVerifyCode("new@example.com"))
		err := handler.SendVerifyCode("new@example.com")
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
		require.Equal(t, 2, mail.sendCount)

		// another address has its own budget
		require.NoError(t, handler.SendVerifyCode("other@example.com"))
	})

	t.Run("smtp failure", func(t *testing.T) {
		handler, mail, _ := setupVerify(t, false, 0)
		mail.fail = true

		err := handler.SendVerifyCode("new@example.com")
		require.Equal(t, models.CodeInternal, models.AsAPIError(err).Code)
	})
}

func TestVerifyCode(t *testing.T) {
	t.Run("single use", func(t *testing.T) {
		handler, mail, _ := setupVerify(t, false, 0)

		require.NoError(t, handler.SendVerifyCode("new@example.com"))
		code := codePattern.FindString(mail.lastMessage)

		require.NoError(t, handler.VerifyCode("new@example.com", code))
		err := handler.VerifyCode("new@example.com", code)
		require.Equal(t, models.CodeNotFound, models.AsAPIError(err).Code)
	})

	t.Run("wrong code keeps the record usable", func(t *testing.T) {
		handler, mail, _ := setupVerify(t, false, 0)

		require.NoError(t, handler.SendVerifyCode("new@example.com"))
		code := codePattern.FindString(mail.lastMessage)

		err := handler.VerifyCode("new@example.com", "000000")
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
		require.NoError(t, handler.VerifyCode("new@example.com", code))
	})

	t.Run("no code issued", func(t *testing.T) {
		handler, _, _ := setupVerify(t, false, 0)

		err := handler.VerifyCode("new@example.com", "123456")
		require.Equal(t, models.CodeNotFound, models.AsAPIError(err).Code)
	})

	t.Run("expired code", func(t *testing.T) {
		handler, _, gdb := setupVerify(t, false, 0)
		now := time.Now()
		rec := dbmodels.EmailVerify{
			VerifyKey:     "stale@example.com",
			Email:         "stale@example.com",
			Code:          "123456",
			DateGenerated: now.Add(-20 * time.Minute),
			DateExpires:   now.Add(-10 * time.Minute),
		}
		require.NoError(t, emailverifystore.NewInstance(gdb).Upsert(rec))

		err := handler.VerifyCode("stale@example.com", "123456")
		require.Equal(t, models.CodeDeadlineExceeded, models.AsAPIError(err).Code)

		// the stale record is gone, the next attempt reports NOT_FOUND
		err = handler.VerifyCode("stale@example.com", "123456")
		require.Equal(t, models.CodeNotFound, models.AsAPIError(err).Code)
	})
}

func TestDeleteExpired(t *testing.T) {
	handler, _, gdb := setupVerify(t, false, 0)
	store := emailverifystore.NewInstance(gdb)
	now := time.Now()
	require.NoError(t, store.Upsert(dbmodels.EmailVerify{
		VerifyKey: "old@example.com", Email: "old@example.com", Code: "111111",
		DateGenerated: now.Add(-30 * time.Minute), DateExpires: now.Add(-20 * time.Minute),
	}))
	require.NoError(t, store.Upsert(dbmodels.EmailVerify{
		VerifyKey: "fresh@example.com", Email: "fresh@example.com", Code: "222222",
		DateGenerated: now, DateExpires: now.Add(10 * time.Minute),
	}))

	deleted, err := handler.DeleteExpired(now)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	rec, err := store.GetByKey("fresh@example.com")
	require.NoError(t, err)
	require.NotNil(t, rec)
}
