package jobapplicationhandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"employee-portal-backend/db"
	"employee-portal-backend/lib/eligibility"
	filestorage "employee-portal-backend/lib/file-storage"
	requeststore "employee-portal-backend/lib/request/store"
	"employee-portal-backend/lib/smtp"
	"employee-portal-backend/lib/utils/helpers"
	connectionhub "employee-portal-backend/lib/ws/hub/connection-hub"
	"employee-portal-backend/models"
	requestapimodels "employee-portal-backend/models/api/request"
	dbmodels "employee-portal-backend/models/db"
	wsmodels "employee-portal-backend/models/ws"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const MaxAdditionalFiles = 3

type Provider interface {
	Create(ctx context.Context, userID string, payload requestapimodels.CreateJobApplication, resume requestapimodels.FileUpload, additional []requestapimodels.FileUpload) (requestapimodels.RequestView, error)
	Eligibility(userID string) (requestapimodels.EligibilityView, error)
	ListOwn(userID string) ([]requestapimodels.RequestView, error)
	Queue() ([]requestapimodels.RequestView, error)
}

var Instance Provider

func NewHandler(emailFrom string, windows eligibility.Windows) {
	Instance = newInstance(db.DB, emailFrom, windows)
}

func newInstance(DB *gorm.DB, emailFrom string, windows eligibility.Windows) *impl {
	return &impl{
		db:        DB,
		emailFrom: emailFrom,
		windows:   windows,
	}
}

type impl struct {
	db        *gorm.DB
	emailFrom string
	windows   eligibility.Windows
}

func (i impl) GetLogger(email string) *log.Entry {
	return log.
		WithField("request_type", models.JobApplicationType).
		WithField("email", email)
}

func (i impl) Create(ctx context.Context, userID string, payload requestapimodels.CreateJobApplication, resume requestapimodels.FileUpload, additional []requestapimodels.FileUpload) (requestapimodels.RequestView, error) {
	if err := payload.Validate(); err != nil {
		return requestapimodels.RequestView{}, err
	}
	if resume.Name == "" || len(resume.Data) == 0 {
		return requestapimodels.RequestView{}, models.NewInvalidArgument("resume file is required")
	}
	if len(additional) > MaxAdditionalFiles {
		return requestapimodels.RequestView{}, models.NewInvalidArgument(fmt.Sprintf("at most %d additional documents are allowed", MaxAdditionalFiles))
	}
	logger := i.GetLogger(payload.Email)
	if userID != "" {
		store := requeststore.NewInstance(i.db)
		newest, err := store.NewestByUser(userID, models.JobApplicationType)
		if err != nil {
			logger.WithError(err).Error("eligibility lookup failed")
			return requestapimodels.RequestView{}, err
		}
		if result := i.windows.Reapply(newest, time.Now()); !result.Eligible {
			return requestapimodels.RequestView{}, models.NewInvalidArgument("you are not eligible to submit a new application yet")
		}
	}

	resumeURL, err := filestorage.Instance.UploadResume(ctx, resume.Name, resume.Data)
	if err != nil {
		logger.WithError(err).Error("resume upload failed")
		return requestapimodels.RequestView{}, err
	}
	files := make(dbmodels.FileRefList, 0, len(additional))
	for _, file := range additional {
		url, err := filestorage.Instance.UploadDocument(ctx, file.Name, file.Data)
		if err != nil {
			logger.WithError(err).Error("document upload failed")
			return requestapimodels.RequestView{}, err
		}
		files = append(files, dbmodels.FileRef{Name: file.Name, URL: url})
	}

	rec := dbmodels.Request{
		Type:               models.JobApplicationType,
		UniqueID:           helpers.GenerateShortID(10),
		UserID:             userID,
		Email:              strings.ToLower(payload.Email),
		FullName:           payload.FullName,
		Phone:              payload.Phone,
		Details:            payload.Details,
		ResumeURL:          resumeURL,
		ResumeOriginalName: resume.Name,
		AdditionalFiles:    files,
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		recID, err := store.Create(rec)
		if err != nil {
			return err
		}
		rec.ID = recID
		approval := dbmodels.Approval{
			RequestID:  recID,
			Department: models.HrDepartment,
			Required:   true,
			Status:     models.AStatePending,
		}
		return tx.Create(&approval).Error
	})
	if err != nil {
		logger.WithError(err).Error("job application save failed")
		return requestapimodels.RequestView{}, err
	}

	// acknowledgement mail is best-effort: failures are logged, never
	// surfaced to the applicant and never retried
	go i.sendAcknowledgement(rec.Email, rec.FullName)
	broadcastCreated(rec)

	created, err := requeststore.NewInstance(i.db).GetByID(rec.ID)
	if err != nil || created == nil {
		return requestapimodels.RequestConvert(rec), nil
	}
	return requestapimodels.RequestConvert(*created), nil
}

func (i impl) Eligibility(userID string) (requestapimodels.EligibilityView, error) {
	store := requeststore.NewInstance(i.db)
	newest, err := store.NewestByUser(userID, models.JobApplicationType)
	if err != nil {
		return requestapimodels.EligibilityView{}, err
	}
	result := i.windows.Reapply(newest, time.Now())
	return requestapimodels.EligibilityView{
		Eligible:       result.Eligible,
		NextEligibleAt: result.NextEligibleAt,
	}, nil
}

func (i impl) ListOwn(userID string) ([]requestapimodels.RequestView, error) {
	store := requeststore.NewInstance(i.db)
	list, err := store.ListByUser(userID, models.JobApplicationType)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) Queue() ([]requestapimodels.RequestView, error) {
	store := requeststore.NewInstance(i.db)
	list, err := store.ListForDepartment(models.HrDepartment, models.JobApplicationType)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) sendAcknowledgement(email, fullName string) {
	message := fmt.Sprintf("Dear %s,\n\nWe've received your application. We'll be in touch soon.", fullName)
	err := smtp.Instance.SendEMail(i.emailFrom, email, message, "Thank you for your application")
	if err != nil {
		i.GetLogger(email).WithError(err).Error("acknowledgement mail failed")
	}
}

func convertList(list []dbmodels.Request) []requestapimodels.RequestView {
	result := make([]requestapimodels.RequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, requestapimodels.RequestConvert(rec))
	}
	return result
}

func broadcastCreated(rec dbmodels.Request) {
	if connectionhub.Instance == nil {
		return
	}
	connectionhub.Instance.Broadcast(wsmodels.ServerMessage{
		Time: time.Now().Format("02.01.2006 15:04:05"),
		Code: wsmodels.CodeRequestCreated,
		Msg:  fmt.Sprintf("%s %s created", rec.Type.ToHuman(), rec.UniqueID),
	})
}
