package requestapimodels

import (
	"time"

	"employee-portal-backend/models"
	dbmodels "employee-portal-backend/models/db"
)

type ApprovalView struct {
	Department string     `json:"department"`
	Required   bool       `json:"required"`
	Status     string     `json:"status"`
	DecisionBy string     `json:"decision_by,omitempty"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
}

func ApprovalConvert(rec dbmodels.Approval) ApprovalView {
	return ApprovalView{
		Department: string(rec.Department),
		Required:   rec.Required,
		Status:     string(rec.Status),
		DecisionBy: rec.DecisionBy,
		DecidedAt:  rec.DecidedAt,
	}
}

type DecisionRequest struct {
	Decision string `json:"decision"` // accepted/rejected
}

func (r DecisionRequest) Validate() error {
	state := models.ApprovalState(r.Decision)
	if !state.IsTerminal() {
		return models.NewInvalidArgument("decision must be accepted or rejected")
	}
	return nil
}

func (r DecisionRequest) State() models.ApprovalState {
	return models.ApprovalState(r.Decision)
}
