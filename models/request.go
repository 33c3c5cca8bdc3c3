package models

type RequestType string

const (
	JobApplicationType   RequestType = "job_application"
	ExceptionRequestType RequestType = "exception_request"
	ResignationType      RequestType = "resignation"
)

var requestTypeHumanName = map[RequestType]string{
	JobApplicationType:   "Job application",
	ExceptionRequestType: "Exception request",
	ResignationType:      "Resignation",
}

func (t RequestType) ToHuman() string {
	if human, exist := requestTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t RequestType) IsValid() bool {
	_, exist := requestTypeHumanName[t]
	return exist
}

type ApprovalState string

const (
	AStatePending  ApprovalState = "pending"
	AStateAccepted ApprovalState = "accepted"
	AStateRejected ApprovalState = "rejected"
)

func (s ApprovalState) IsValid() bool {
	return s == AStatePending || s == AStateAccepted || s == AStateRejected
}

// IsTerminal reports whether the state is a decision that locks the row.
func (s ApprovalState) IsTerminal() bool {
	return s == AStateAccepted || s == AStateRejected
}

type Department string

const (
	HrDepartment Department = "HR"
	ItDepartment Department = "IT"
)

func (d Department) IsValid() bool {
	return d == HrDepartment || d == ItDepartment
}

// QueueRole maps a department queue to the staff role allowed to decide it.
func (d Department) QueueRole() UserRole {
	if d == ItDepartment {
		return ItRole
	}
	return HrRole
}
