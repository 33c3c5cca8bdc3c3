package requestapimodels

import (
	"time"

	"employee-portal-backend/models"
)

type CreateResignation struct {
	Reason             string `json:"reason"`
	LastWorkingDay     string `json:"last_working_day"` // YYYY-MM-DD
	ResignationType    string `json:"resignation_type"`
	NoticeAcknowledged bool   `json:"notice_acknowledged"`
	Comments           string `json:"comments,omitempty"`
}

func (r CreateResignation) Validate() error {
	if r.LastWorkingDay == "" {
		return models.NewInvalidArgument("last working day is required")
	}
	day, err := r.GetLastWorkingDay()
	if err != nil {
		return models.NewInvalidArgument("last working day is malformed")
	}
	if day.Before(today()) {
		return models.NewInvalidArgument("last working day cannot be in the past")
	}
	if !r.NoticeAcknowledged {
		return models.NewInvalidArgument("notice period must be acknowledged")
	}
	return nil
}

func (r CreateResignation) GetLastWorkingDay() (time.Time, error) {
	return time.Parse(dateLayout, r.LastWorkingDay)
}
