package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee roles. Portal roles get a linked User identity; cleaners do not.
const (
	EmployeeRoleTrainer   = "Trainer"
	EmployeeRoleReception = "Reception"
	EmployeeRoleManager   = "Manager"
	EmployeeRoleCleaner   = "Cleaner"
)

// Employee statuses.
const (
	EmployeeStatusActive       = "Active"
	EmployeeStatusOnPermission = "On Permission"
	EmployeeStatusResigned     = "Resigned"
)

// Salary types.
const (
	SalaryMonthly  = "Monthly"
	SalaryPerClass = "Per-class"
	SalaryPerHour  = "Per-hour"
)

// EmployeeCodePrefix prefixes the sequential human-readable staff code.
const EmployeeCodePrefix = "EMP"

// Employee is the staff record. It is broader than Trainer: it covers every
// staff role and carries payroll fields. When Role is Trainer the
// specialization/bio/experience fields mirror the Trainer profile; the
// reconciler keeps the two records field-synchronized in both directions.
type Employee struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EmployeeID     string              `bson:"employeeId" json:"employeeId"` // EMP-NNN, sequential
	Name           string              `bson:"name" json:"name"`
	Role           string              `bson:"role" json:"role"`
	Gender         string              `bson:"gender" json:"gender"`
	Phone          string              `bson:"phone" json:"phone"`
	Email          string              `bson:"email" json:"email"` // stored lowercase, unique
	JoiningDate    time.Time           `bson:"joiningDate" json:"joiningDate"`
	SalaryType     string              `bson:"salaryType" json:"salaryType"`
	BaseSalary     float64             `bson:"baseSalary" json:"baseSalary"`
	Status         string              `bson:"status" json:"status"`
	User           *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Specialization string              `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Bio            string              `bson:"bio,omitempty" json:"bio,omitempty"`
	Experience     string              `bson:"experience,omitempty" json:"experience,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updated_at"`
}

// PortalRole reports whether this employee role gets a linked User identity.
func PortalRole(role string) bool {
	switch role {
	case EmployeeRoleTrainer, EmployeeRoleReception, EmployeeRoleManager:
		return true
	}
	return false
}

// ValidEmployeeRole reports whether role is a recognized staff role.
func ValidEmployeeRole(role string) bool {
	return PortalRole(role) || role == EmployeeRoleCleaner
}
