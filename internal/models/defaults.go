package models

// DefaultAccountPassword is the initial password set on identities created by
// an admin flow where no password was supplied. Users are expected to change
// it through the reset flow.
const DefaultAccountPassword = "password123"

// ProfileDefaults is the declared set of fallback values applied whenever a
// role profile is synthesized from an identity during repair-on-read. Keeping
// the table here, rather than scattering literals through the reconciler,
// makes the healed shape of each profile explicit and uniform.
type ProfileDefaults struct {
	Phone           string
	Class           string
	ClassType       string
	DifficultyLevel string
	Status          string
	Gender          string
	EmployeeRole    string
	SalaryType      string
	BaseSalary      float64
	EmployeeStatus  string
}

// MemberDefaults fills a healed member profile.
var MemberDefaults = ProfileDefaults{
	Phone:           "N/A",
	Class:           "",
	ClassType:       ClassTypeCardio,
	DifficultyLevel: DifficultyBeginner,
	Status:          MemberStatusActive,
}

// TrainerDefaults fills a healed trainer profile.
var TrainerDefaults = ProfileDefaults{
	Phone: "N/A",
}

// StaffDefaults fills a healed staff record for a trainer identity.
var StaffDefaults = ProfileDefaults{
	Phone:          "N/A",
	Gender:         GenderOthers,
	EmployeeRole:   EmployeeRoleTrainer,
	SalaryType:     SalaryMonthly,
	BaseSalary:     0,
	EmployeeStatus: EmployeeStatusActive,
}

// OrDefault returns value unless it is empty, in which case fallback is used.
func OrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
