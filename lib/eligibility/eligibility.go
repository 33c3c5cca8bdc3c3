package eligibility

import (
	"time"

	"employee-portal-backend/models"
	dbmodels "employee-portal-backend/models/db"
)

const (
	DefaultReapplyWindow     = 14 * 24 * time.Hour
	DefaultExceptionCooldown = 24 * time.Hour
)

// Windows holds the configured cooldown periods.
type Windows struct {
	ReapplyWindow     time.Duration
	ExceptionCooldown time.Duration
}

func DefaultWindows() Windows {
	return Windows{
		ReapplyWindow:     DefaultReapplyWindow,
		ExceptionCooldown: DefaultExceptionCooldown,
	}
}

type Result struct {
	Eligible       bool
	NextEligibleAt *time.Time
}

// Reapply decides whether a new job application may be submitted. The
// argument is the newest prior application or nil when none exists. An
// accepted newest application routes the user to the accepted-employee
// flow, so reapplication stays closed without a next-eligible date.
// Exactly at the window boundary submission is allowed.
func (w Windows) Reapply(newest *dbmodels.Request, now time.Time) Result {
	if newest == nil {
		return Result{Eligible: true}
	}
	status := jobApplicationStatus(*newest)
	if status != models.AStatePending && status != models.AStateRejected {
		return Result{}
	}
	if now.Sub(newest.CreatedAt) >= w.ReapplyWindow {
		return Result{Eligible: true}
	}
	next := newest.CreatedAt.Add(w.ReapplyWindow)
	return Result{NextEligibleAt: &next}
}

// ExceptionRequest decides whether a new exception request may be
// submitted. Purely time-based: the prior request's decision outcome is
// not considered.
func (w Windows) ExceptionRequest(newest *dbmodels.Request, now time.Time) Result {
	if newest == nil {
		return Result{Eligible: true}
	}
	if now.Sub(newest.CreatedAt) >= w.ExceptionCooldown {
		return Result{Eligible: true}
	}
	next := newest.CreatedAt.Add(w.ExceptionCooldown)
	return Result{NextEligibleAt: &next}
}

// Resignation blocks resubmission only while the newest resignation's HR
// decision is still pending. No time window applies.
func (w Windows) Resignation(newest *dbmodels.Request) Result {
	if newest == nil {
		return Result{Eligible: true}
	}
	hr := newest.ApprovalFor(models.HrDepartment)
	if hr != nil && hr.Status == models.AStatePending {
		return Result{}
	}
	return Result{Eligible: true}
}

func jobApplicationStatus(rec dbmodels.Request) models.ApprovalState {
	hr := rec.ApprovalFor(models.HrDepartment)
	if hr == nil {
		return models.AStatePending
	}
	return hr.Status
}
