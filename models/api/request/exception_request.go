package requestapimodels

import (
	"regexp"
	"strings"
	"time"

	"employee-portal-backend/models"
)

var phonePattern = regexp.MustCompile(`^\+?\d+$`)

const dateLayout = "2006-01-02"

type CreateExceptionRequest struct {
	SystemsNeeded []string `json:"systems_needed"`
	Reason        string   `json:"reason"`
	StartDate     string   `json:"start_date"`         // YYYY-MM-DD
	EndDate       string   `json:"end_date,omitempty"` // empty = indefinite
	NeedHR        bool     `json:"need_hr"`
	NeedIT        bool     `json:"need_it"`
}

func (r CreateExceptionRequest) Validate() error {
	if len(r.SystemsNeeded) == 0 {
		return models.NewInvalidArgument("select at least one system")
	}
	for _, system := range r.SystemsNeeded {
		if strings.TrimSpace(system) == "" {
			return models.NewInvalidArgument("system name must not be blank")
		}
	}
	if !r.NeedHR && !r.NeedIT {
		return models.NewInvalidArgument("select at least one approving department")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return models.NewInvalidArgument("reason is required")
	}
	start, err := r.GetStartDate()
	if err != nil {
		return models.NewInvalidArgument("start date is malformed")
	}
	if start.Before(today()) {
		return models.NewInvalidArgument("start date cannot be in the past")
	}
	if r.EndDate != "" {
		end, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return models.NewInvalidArgument("end date is malformed")
		}
		if end.Before(start) {
			return models.NewInvalidArgument("end date cannot be before start date")
		}
	}
	return nil
}

func (r CreateExceptionRequest) GetStartDate() (time.Time, error) {
	return time.Parse(dateLayout, r.StartDate)
}

// GetEndDate returns nil for an indefinite request.
func (r CreateExceptionRequest) GetEndDate() (*time.Time, error) {
	if r.EndDate == "" {
		return nil, nil
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return nil, err
	}
	return &end, nil
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
