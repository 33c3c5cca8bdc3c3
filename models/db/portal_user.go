package dbmodels

import (
	"employee-portal-backend/models"
	usersapimodels "employee-portal-backend/models/api/users"
)

type PortalUser struct {
	BaseModel
	Email          string          `gorm:"type:varchar(255);uniqueIndex"`
	FullName       string          `gorm:"type:varchar(200)"`
	Role           models.UserRole `gorm:"type:varchar(50)"`
	Password       string          `gorm:"type:varchar(128)"` // bcrypt hash, empty until first login
	FirstLoginDone bool
}

func (r PortalUser) ToModel() usersapimodels.PortalUserView {
	return usersapimodels.PortalUserView{
		ID:             r.ID,
		Email:          r.Email,
		FullName:       r.FullName,
		Role:           string(r.Role),
		RoleName:       r.Role.ToHuman(),
		FirstLoginDone: r.FirstLoginDone,
		CreatedAt:      r.CreatedAt,
	}
}
