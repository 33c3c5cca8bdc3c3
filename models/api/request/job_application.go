package requestapimodels

import (
	"strings"
	"time"

	"employee-portal-backend/models"

	"github.com/asaskevich/govalidator"
)

const (
	MaxFullNameLen = 200
	MaxPhoneLen    = 15
	MaxDetailsLen  = 1000
)

type CreateJobApplication struct {
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
	Email    string `json:"email" form:"email"`
	Details  string `json:"details" form:"details"`
}

func (r CreateJobApplication) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return models.NewInvalidArgument("full name is required")
	}
	if len(r.FullName) > MaxFullNameLen {
		return models.NewInvalidArgument("full name is too long")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return models.NewInvalidArgument("phone is required")
	}
	if len(r.Phone) > MaxPhoneLen || !phonePattern.MatchString(r.Phone) {
		return models.NewInvalidArgument("phone is malformed")
	}
	if !govalidator.IsEmail(r.Email) {
		return models.NewInvalidArgument("email is malformed")
	}
	if len(r.Details) > MaxDetailsLen {
		return models.NewInvalidArgument("details are too long")
	}
	return nil
}

type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

type EligibilityView struct {
	Eligible       bool       `json:"eligible"`
	NextEligibleAt *time.Time `json:"next_eligible_at,omitempty"`
}
