package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"employee-portal-backend/models"

	"github.com/pkg/errors"
)

type Request struct {
	BaseModel
	Type     models.RequestType `gorm:"type:varchar(30);index"`
	UniqueID string             `gorm:"type:varchar(20);index"`
	UserID   string             `gorm:"type:varchar(36);index"` // empty for pre-account job applicants
	Email    string             `gorm:"type:varchar(255)"`

	// job application
	FullName           string `gorm:"type:varchar(200)"`
	Phone              string `gorm:"type:varchar(15)"`
	Details            string `gorm:"type:varchar(1000)"`
	ResumeURL          string
	ResumeOriginalName string
	AdditionalFiles    FileRefList `gorm:"type:jsonb"`

	// exception request
	SystemsNeeded StringList `gorm:"type:jsonb"`
	Reason        string
	StartDate     *time.Time
	EndDate       *time.Time // nil = indefinite

	// resignation
	LastWorkingDay     *time.Time
	ResignationType    string `gorm:"type:varchar(50)"`
	NoticeAcknowledged bool
	Comments           string

	Approvals []Approval `gorm:"foreignKey:RequestID"`
}

// Approval is the per-department decision record, one shape for all
// request types.
type Approval struct {
	BaseModel
	RequestID  string            `gorm:"type:varchar(36);index"`
	Department models.Department `gorm:"type:varchar(10)"`
	Required   bool
	Status     models.ApprovalState `gorm:"type:varchar(20)"`
	DecisionBy string               `gorm:"type:varchar(36)"`
	DecidedAt  *time.Time
}

// ApprovalFor returns the approval row for the department, nil when absent.
func (r Request) ApprovalFor(dept models.Department) *Approval {
	for idx := range r.Approvals {
		if r.Approvals[idx].Department == dept {
			return &r.Approvals[idx]
		}
	}
	return nil
}

type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type FileRefList []FileRef

func (j FileRefList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *FileRefList) Scan(value any) error {
	return scanJSON(value, j)
}

type StringList []string

func (j StringList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *StringList) Scan(value any) error {
	return scanJSON(value, j)
}

func scanJSON(value any, out any) error {
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, out)
	case string:
		return json.Unmarshal([]byte(data), out)
	case nil:
		return nil
	}
	return errors.Errorf("unsupported jsonb source type %T", value)
}
