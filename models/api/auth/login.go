package authapimodels

import (
	"strings"

	"employee-portal-backend/models"

	"github.com/asaskevich/govalidator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return models.NewInvalidArgument("email is required")
	}
	if r.Password == "" {
		return models.NewInvalidArgument("password is required")
	}
	return nil
}

type JWTResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type JWTRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r JWTRefreshRequest) Validate() error {
	if r.RefreshToken == "" {
		return models.NewInvalidArgument("refresh token is required")
	}
	return nil
}

type CreateAuthUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Display name for self-registration; roster accounts already carry one.
	FullName string `json:"full_name"`
}

func (r CreateAuthUserRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return models.NewInvalidArgument("email and password are required")
	}
	if !govalidator.IsEmail(r.Email) {
		return models.NewInvalidArgument("email is malformed")
	}
	if len(r.Password) < 6 {
		return models.NewInvalidArgument("password must be at least 6 characters")
	}
	return nil
}

type CreateAuthUserResponse struct {
	UID string `json:"uid"`
}
