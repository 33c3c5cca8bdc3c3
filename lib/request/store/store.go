package requeststore

import (
	"employee-portal-backend/models"
	dbmodels "employee-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Request) (id string, err error)
	GetByID(id string) (rec *dbmodels.Request, err error)
	ListByUser(userID string, reqType models.RequestType) (list []dbmodels.Request, err error)
	NewestByUser(userID string, reqType models.RequestType) (rec *dbmodels.Request, err error)
	ListByType(reqType models.RequestType, page, limit int) (list []dbmodels.Request, err error)
	ListForDepartment(dept models.Department, reqType models.RequestType) (list []dbmodels.Request, err error)
	DeleteByUser(userID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Request) (id string, err error) {
	err = i.db.
		Omit("Approvals").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Request, error) {
	rec := dbmodels.Request{}
	err := i.db.
		Where("id = ?", id).
		Preload("Approvals").
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

func (i impl) ListByUser(userID string, reqType models.RequestType) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	err = i.db.
		Where("user_id = ?", userID).
		Where("type = ?", reqType).
		Order("created_at DESC").
		Preload("Approvals").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) NewestByUser(userID string, reqType models.RequestType) (*dbmodels.Request, error) {
	rec := dbmodels.Request{}
	err := i.db.
		Where("user_id = ?", userID).
		Where("type = ?", reqType).
		Order("created_at DESC").
		Preload("Approvals").
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

func (i impl) ListByType(reqType models.RequestType, page, limit int) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	tx := i.db.
		Where("type = ?", reqType).
		Order("created_at DESC").
		Preload("Approvals")
	setPage(tx, page, limit)
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListForDepartment returns the department queue: requests carrying a
// required approval row for the department. Not-required rows never
// surface here.
func (i impl) ListForDepartment(dept models.Department, reqType models.RequestType) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	err = i.db.
		Where("type = ?", reqType).
		Where("id IN (SELECT request_id FROM approvals WHERE department = ? AND required)", dept).
		Order("created_at DESC").
		Preload("Approvals").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByUser(userID string) error {
	err := i.db.
		Where("request_id IN (SELECT id FROM requests WHERE user_id = ?)", userID).
		Delete(&dbmodels.Approval{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("user_id = ?", userID).
		Delete(&dbmodels.Request{}).
		Error
}

func setPage(tx *gorm.DB, pageValue, limitValue int) {
	page := 1
	limit := 10
	if pageValue > 0 {
		page = pageValue
	}
	if limitValue > 0 {
		limit = limitValue
	}
	if limit > 100 {
		limit = 100
	}
	tx.Limit(limit).Offset((page - 1) * limit)
}
