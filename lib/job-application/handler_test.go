package jobapplicationhandler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"employee-portal-backend/lib/eligibility"
	filestorage "employee-portal-backend/lib/file-storage"
	"employee-portal-backend/lib/smtp"
	"employee-portal-backend/models"
	requestapimodels "employee-portal-backend/models/api/request"
	dbmodels "employee-portal-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeStorage struct {
	uploads int
}

func (f *fakeStorage) UploadResume(ctx context.Context, fileName string, data []byte) (string, error) {
	f.uploads++
	return "http://storage/resumes/" + fileName, nil
}

func (f *fakeStorage) UploadDocument(ctx context.Context, fileName string, data []byte) (string, error) {
	f.uploads++
	return "http://storage/additional-documents/" + fileName, nil
}

type fakeSMTP struct {
	mu       sync.Mutex
	lastTo   string
	lastSubj string
}

func (f *fakeSMTP) SendEMail(from, to, message, subject string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTo = to
	f.lastSubj = subject
	return nil
}

func (f *fakeSMTP) IsConfigured() bool { return true }

func (f *fakeSMTP) last() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastTo, f.lastSubj
}

func setupHandler(t *testing.T) (*impl, *fakeStorage, *fakeSMTP, *gorm.DB) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&dbmodels.Request{}, &dbmodels.Approval{}))

	storage := &fakeStorage{}
	filestorage.Instance = storage
	mail := &fakeSMTP{}
	smtp.Instance = mail
	return newInstance(gdb, "portal@example.com", eligibility.DefaultWindows()), storage, mail, gdb
}

func validPayload() requestapimodels.CreateJobApplication {
	return requestapimodels.CreateJobApplication{
		FullName: "Anna Applicant",
		Phone:    "+15550100",
		Email:    "Anna@Example.com",
		Details:  "Backend engineer, 5 years of Go",
	}
}

func resumeFile() requestapimodels.FileUpload {
	return requestapimodels.FileUpload{Name: "resume.pdf", Data: []byte("resume body")}
}

func TestCreate(t *testing.T) {
	t.Run("anonymous applicant", func(t *testing.T) {
		handler, storage, mail, gdb := setupHandler(t)

		view, err := handler.Create(context.Background(), "", validPayload(), resumeFile(), nil)
		require.NoError(t, err)
		require.Equal(t, "anna@example.com", view.Email)
		require.NotEmpty(t, view.ResumeURL)
		require.Equal(t, 1, storage.uploads)
		require.Len(t, view.Approvals, 1)
		require.Equal(t, string(models.HrDepartment), view.Approvals[0].Department)

		var approval dbmodels.Approval
		require.NoError(t, gdb.Where("request_id = ?", view.ID).First(&approval).Error)
		require.True(t, approval.Required)

		// acknowledgement mail is sent in the background
		require.Eventually(t, func() bool {
			to, subj := mail.last()
			return to == "anna@example.com" && subj == "Thank you for your application"
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("additional documents are stored alongside the resume", func(t *testing.T) {
		handler, storage, _, _ := setupHandler(t)
		docs := []requestapimodels.FileUpload{
			{Name: "cover-letter.pdf", Data: []byte("letter")},
			{Name: "certificate.pdf", Data: []byte("cert")},
		}

		view, err := handler.Create(context.Background(), "", validPayload(), resumeFile(), docs)
		require.NoError(t, err)
		require.Len(t, view.AdditionalFiles, 2)
		require.Equal(t, 3, storage.uploads)
	})

	t.Run("too many additional documents", func(t *testing.T) {
		handler, _, _, _ := setupHandler(t)
		docs := make([]requestapimodels.FileUpload, MaxAdditionalFiles+1)
		for idx := range docs {
			docs[idx] = requestapimodels.FileUpload{Name: fmt.Sprintf("doc-%d.pdf", idx), Data: []byte("x")}
		}

		_, err := handler.Create(context.Background(), "", validPayload(), resumeFile(), docs)
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("resume is required", func(t *testing.T) {
		handler, _, _, _ := setupHandler(t)

		_, err := handler.Create(context.Background(), "", validPayload(), requestapimodels.FileUpload{}, nil)
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("reapply window blocks a signed-in user", func(t *testing.T) {
		handler, _, _, _ := setupHandler(t)

		_, err := handler.Create(context.Background(), "user-1", validPayload(), resumeFile(), nil)
		require.NoError(t, err)

		_, err = handler.Create(context.Background(), "user-1", validPayload(), resumeFile(), nil)
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("anonymous submissions are never rate limited", func(t *testing.T) {
		handler, _, _, _ := setupHandler(t)

		_, err := handler.Create(context.Background(), "", validPayload(), resumeFile(), nil)
		require.NoError(t, err)
		_, err = handler.Create(context.Background(), "", validPayload(), resumeFile(), nil)
		require.NoError(t, err)
	})
}

func TestEligibility(t *testing.T) {
	handler, _, _, _ := setupHandler(t)

	view, err := handler.Eligibility("user-1")
	require.NoError(t, err)
	require.True(t, view.Eligible)

	_, err = handler.Create(context.Background(), "user-1", validPayload(), resumeFile(), nil)
	require.NoError(t, err)

	view, err = handler.Eligibility("user-1")
	require.NoError(t, err)
	require.False(t, view.Eligible)
	require.NotNil(t, view.NextEligibleAt)
}

func TestQueue(t *testing.T) {
	handler, _, _, _ := setupHandler(t)

	_, err := handler.Create(context.Background(), "", validPayload(), resumeFile(), nil)
	require.NoError(t, err)

	queue, err := handler.Queue()
	require.NoError(t, err)
	require.Len(t, queue, 1)
}
