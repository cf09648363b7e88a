package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainer is the trainer profile linked to a User identity. Unlike Member,
// the user reference is required: a trainer profile never exists without its
// identity. Trainers with staff records also have an Employee document whose
// trainer-shaped fields must stay synchronized with this one.
type Trainer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"` // stored lowercase, unique
	Phone          string             `bson:"phone" json:"phone"`
	Specialization string             `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Experience     string             `bson:"experience,omitempty" json:"experience,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updated_at"`
}
