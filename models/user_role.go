package models

type UserRole string

const (
	EmployeeRole UserRole = "employee"
	HrRole       UserRole = "hr"
	ItRole       UserRole = "it"
	AdminRole    UserRole = "admin"
)

var roleHumanName = map[UserRole]string{
	EmployeeRole: "Employee",
	HrRole:       "HR",
	ItRole:       "IT",
	AdminRole:    "Administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

// IsStaff reports whether the role may see department queues.
func (r UserRole) IsStaff() bool {
	return r == HrRole || r == ItRole || r == AdminRole
}
