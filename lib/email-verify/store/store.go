package emailverifystore

import (
	"time"

	dbmodels "employee-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Upsert(rec dbmodels.EmailVerify) error
	GetByKey(key string) (*dbmodels.EmailVerify, error)
	DeleteByKey(key string) error
	DeleteExpired(now time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Upsert overwrites any live code under the same key, keeping at most one
// code per key.
func (i impl) Upsert(rec dbmodels.EmailVerify) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "verify_key"}},
			UpdateAll: true,
		}).
		Create(&rec).
		Error
}

func (i impl) GetByKey(key string) (*dbmodels.EmailVerify, error) {
	rec := dbmodels.EmailVerify{}
	err := i.db.
		Where("verify_key = ?", key).
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

func (i impl) DeleteByKey(key string) error {
	return i.db.
		Where("verify_key = ?", key).
		Delete(&dbmodels.EmailVerify{}).
		Error
}

func (i impl) DeleteExpired(now time.Time) (int64, error) {
	result := i.db.
		Where("date_expires < ?", now).
		Delete(&dbmodels.EmailVerify{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
