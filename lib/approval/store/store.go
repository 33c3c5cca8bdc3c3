package approvalstore

import (
	"time"

	"employee-portal-backend/models"
	dbmodels "employee-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	CreateBatch(recs []dbmodels.Approval) error
	GetByRequestAndDept(requestID string, dept models.Department) (rec *dbmodels.Approval, err error)
	ListByRequest(requestID string) (list []dbmodels.Approval, err error)
	// Decide flips a pending required approval to a terminal state.
	// The WHERE clause is the compare-and-swap: a row already decided (or
	// not required) matches nothing and the call reports no update.
	Decide(requestID string, dept models.Department, state models.ApprovalState, reviewerID string, decidedAt time.Time) (updated bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateBatch(recs []dbmodels.Approval) error {
	if len(recs) == 0 {
		return nil
	}
	return i.db.
		Create(&recs).
		Error
}

func (i impl) GetByRequestAndDept(requestID string, dept models.Department) (*dbmodels.Approval, error) {
	rec := dbmodels.Approval{}
	err := i.db.
		Where("request_id = ?", requestID).
		Where("department = ?", dept).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.Approval, err error) {
	list = []dbmodels.Approval{}
	err = i.db.
		Where("request_id = ?", requestID).
		Order("department ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Decide(requestID string, dept models.Department, state models.ApprovalState, reviewerID string, decidedAt time.Time) (bool, error) {
	result := i.db.
		Model(&dbmodels.Approval{}).
		Where("request_id = ?", requestID).
		Where("department = ?", dept).
		Where("required = ?", true).
		Where("status = ?", models.AStatePending).
		Updates(map[string]interface{}{
			"status":      state,
			"decision_by": reviewerID,
			"decided_at":  decidedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
