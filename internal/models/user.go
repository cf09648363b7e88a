package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity roles. Role is immutable after creation; changing a person's role
// means deleting and recreating their identity.
const (
	RoleAdmin     = "admin"
	RoleTrainer   = "trainer"
	RoleMember    = "member"
	RoleReception = "reception"
	RoleManager   = "manager"
)

// Gender values shared by users, members and employees.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOthers = "Others"
)

// User is the canonical identity record. Every person in the system (admin,
// trainer, member, staff with portal access) has exactly one User; role
// profiles in other collections point back at it via their `user` field.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"` // stored lowercase, unique
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash
	Role      string             `bson:"role" json:"role"`
	Gender    string             `bson:"gender,omitempty" json:"gender,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// ValidIdentityRole reports whether role is one the registration and admin
// creation paths accept.
func ValidIdentityRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTrainer, RoleMember, RoleReception, RoleManager:
		return true
	}
	return false
}

// RequiresProfile reports whether an identity with this role must have a
// role profile record in another collection.
func RequiresProfile(role string) bool {
	return role == RoleTrainer || role == RoleMember
}
