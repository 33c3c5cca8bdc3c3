package requestapimodels

import (
	"time"

	dbmodels "employee-portal-backend/models/db"
)

type FileRefView struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type RequestView struct {
	ID        string    `json:"id"`
	UniqueID  string    `json:"unique_id"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`

	FullName           string        `json:"full_name,omitempty"`
	Phone              string        `json:"phone,omitempty"`
	Details            string        `json:"details,omitempty"`
	ResumeURL          string        `json:"resume_url,omitempty"`
	ResumeOriginalName string        `json:"resume_original_name,omitempty"`
	AdditionalFiles    []FileRefView `json:"additional_files,omitempty"`

	SystemsNeeded []string   `json:"systems_needed,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`

	LastWorkingDay     *time.Time `json:"last_working_day,omitempty"`
	ResignationType    string     `json:"resignation_type,omitempty"`
	NoticeAcknowledged bool       `json:"notice_acknowledged,omitempty"`
	Comments           string     `json:"comments,omitempty"`

	Approvals []ApprovalView `json:"approvals"`
}

func RequestConvert(rec dbmodels.Request) RequestView {
	view := RequestView{
		ID:                 rec.ID,
		UniqueID:           rec.UniqueID,
		Type:               string(rec.Type),
		UserID:             rec.UserID,
		Email:              rec.Email,
		CreatedAt:          rec.CreatedAt,
		FullName:           rec.FullName,
		Phone:              rec.Phone,
		Details:            rec.Details,
		ResumeURL:          rec.ResumeURL,
		ResumeOriginalName: rec.ResumeOriginalName,
		SystemsNeeded:      rec.SystemsNeeded,
		Reason:             rec.Reason,
		StartDate:          rec.StartDate,
		EndDate:            rec.EndDate,
		LastWorkingDay:     rec.LastWorkingDay,
		ResignationType:    rec.ResignationType,
		NoticeAcknowledged: rec.NoticeAcknowledged,
		Comments:           rec.Comments,
	}
	for _, file := range rec.AdditionalFiles {
		view.AdditionalFiles = append(view.AdditionalFiles, FileRefView{Name: file.Name, URL: file.URL})
	}
	view.Approvals = make([]ApprovalView, 0, len(rec.Approvals))
	for _, approval := range rec.Approvals {
		view.Approvals = append(view.Approvals, ApprovalConvert(approval))
	}
	return view
}
