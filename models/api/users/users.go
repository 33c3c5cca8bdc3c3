package usersapimodels

import (
	"strings"
	"time"

	"employee-portal-backend/models"

	"github.com/asaskevich/govalidator"
)

type CreateUser struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	// ReplaceRole confirms overwriting an existing record that carries a
	// different role.
	ReplaceRole bool `json:"replace_role,omitempty"`
}

func (r CreateUser) Validate() error {
	if !govalidator.IsEmail(r.Email) {
		return models.NewInvalidArgument("email is malformed")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return models.NewInvalidArgument("full name is required")
	}
	if !models.UserRole(strings.ToLower(r.Role)).IsValid() {
		return models.NewInvalidArgument("unknown role")
	}
	return nil
}

type UpdateUser struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (r UpdateUser) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return models.NewInvalidArgument("full name is required")
	}
	if !models.UserRole(strings.ToLower(r.Role)).IsValid() {
		return models.NewInvalidArgument("unknown role")
	}
	return nil
}

type PortalUserView struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	RoleName       string    `json:"role_name"`
	FirstLoginDone bool      `json:"first_login_done"`
	CreatedAt      time.Time `json:"created_at"`
}

type BulkImportResult struct {
	Added int `json:"added"` // successfully upserted rows only
}
