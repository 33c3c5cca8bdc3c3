package exceptionrequesthandler

import (
	"time"

	"employee-portal-backend/db"
	"employee-portal-backend/lib/eligibility"
	requeststore "employee-portal-backend/lib/request/store"
	"employee-portal-backend/lib/utils/helpers"
	"employee-portal-backend/models"
	requestapimodels "employee-portal-backend/models/api/request"
	dbmodels "employee-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(userID string, payload requestapimodels.CreateExceptionRequest) (requestapimodels.RequestView, error)
	Eligibility(userID string) (requestapimodels.EligibilityView, error)
	ListOwn(userID string) ([]requestapimodels.RequestView, error)
	Queue(dept models.Department) ([]requestapimodels.RequestView, error)
}

var Instance Provider

func NewHandler(windows eligibility.Windows) {
	Instance = newInstance(db.DB, windows)
}

func newInstance(DB *gorm.DB, windows eligibility.Windows) *impl {
	return &impl{
		db:      DB,
		windows: windows,
	}
}

type impl struct {
	db      *gorm.DB
	windows eligibility.Windows
}

func (i impl) GetLogger(userID string) *log.Entry {
	return log.
		WithField("request_type", models.ExceptionRequestType).
		WithField("user_id", userID)
}

func (i impl) Create(userID string, payload requestapimodels.CreateExceptionRequest) (requestapimodels.RequestView, error) {
	if err := payload.Validate(); err != nil {
		return requestapimodels.RequestView{}, err
	}
	logger := i.GetLogger(userID)
	store := requeststore.NewInstance(i.db)
	newest, err := store.NewestByUser(userID, models.ExceptionRequestType)
	if err != nil {
		logger.WithError(err).Error("eligibility lookup failed")
		return requestapimodels.RequestView{}, err
	}
	if result := i.windows.ExceptionRequest(newest, time.Now()); !result.Eligible {
		return requestapimodels.RequestView{}, models.NewInvalidArgument("you can submit one exception request per day")
	}

	startDate, err := payload.GetStartDate()
	if err != nil {
		return requestapimodels.RequestView{}, models.NewInvalidArgument("start date is malformed")
	}
	endDate, err := payload.GetEndDate()
	if err != nil {
		return requestapimodels.RequestView{}, models.NewInvalidArgument("end date is malformed")
	}
	rec := dbmodels.Request{
		Type:          models.ExceptionRequestType,
		UniqueID:      helpers.GenerateShortID(10),
		UserID:        userID,
		SystemsNeeded: dbmodels.StringList(payload.SystemsNeeded),
		Reason:        payload.Reason,
		StartDate:     &startDate,
		EndDate:       endDate,
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		txStore := requeststore.NewInstance(tx)
		recID, err := txStore.Create(rec)
		if err != nil {
			return err
		}
		rec.ID = recID
		// one row per department either way, Required carries the
		// requester's selection
		approvals := []dbmodels.Approval{
			{RequestID: recID, Department: models.HrDepartment, Required: payload.NeedHR, Status: models.AStatePending},
			{RequestID: recID, Department: models.ItDepartment, Required: payload.NeedIT, Status: models.AStatePending},
		}
		return tx.Create(&approvals).Error
	})
	if err != nil {
		logger.WithError(err).Error("exception request save failed")
		return requestapimodels.RequestView{}, err
	}

	created, err := store.GetByID(rec.ID)
	if err != nil || created == nil {
		return requestapimodels.RequestConvert(rec), nil
	}
	return requestapimodels.RequestConvert(*created), nil
}

func (i impl) Eligibility(userID string) (requestapimodels.EligibilityView, error) {
	store := requeststore.NewInstance(i.db)
	newest, err := store.NewestByUser(userID, models.ExceptionRequestType)
	if err != nil {
		return requestapimodels.EligibilityView{}, err
	}
	result := i.windows.ExceptionRequest(newest, time.Now())
	return requestapimodels.EligibilityView{
		Eligible:       result.Eligible,
		NextEligibleAt: result.NextEligibleAt,
	}, nil
}

func (i impl) ListOwn(userID string) ([]requestapimodels.RequestView, error) {
	store := requeststore.NewInstance(i.db)
	list, err := store.ListByUser(userID, models.ExceptionRequestType)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) Queue(dept models.Department) ([]requestapimodels.RequestView, error) {
	if !dept.IsValid() {
		return nil, models.NewInvalidArgument("unknown department")
	}
	store := requeststore.NewInstance(i.db)
	list, err := store.ListForDepartment(dept, models.ExceptionRequestType)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func convertList(list []dbmodels.Request) []requestapimodels.RequestView {
	result := make([]requestapimodels.RequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, requestapimodels.RequestConvert(rec))
	}
	return result
}
