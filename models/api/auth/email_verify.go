package authapimodels

import (
	"strings"

	"employee-portal-backend/models"
)

type SendCodeRequest struct {
	Email string `json:"email"`
}

func (r SendCodeRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return models.NewInvalidArgument("email is required")
	}
	return nil
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r VerifyCodeRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Code == "" {
		return models.NewInvalidArgument("email and code are required")
	}
	return nil
}
