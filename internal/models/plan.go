package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan is a standalone plan a trainer assigns to a trainee. Both
// references point at User identities, not profile records.
type WorkoutPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Difficulty  string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	TraineeID   primitive.ObjectID `bson:"traineeId" json:"traineeId"`
	StartDate   *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	WorkoutDays []WorkoutDay       `bson:"workoutDays,omitempty" json:"workoutDays,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// DietPlan is a standalone diet chart a trainer assigns to a trainee.
type DietPlan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID      primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	TraineeID      primitive.ObjectID `bson:"traineeId" json:"traineeId"`
	DietChart      string             `bson:"dietChart,omitempty" json:"dietChart,omitempty"`
	MealTiming     []MealTiming       `bson:"mealTiming,omitempty" json:"mealTiming,omitempty"`
	NutritionNotes string             `bson:"nutritionNotes,omitempty" json:"nutritionNotes,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Feedback types.
const (
	FeedbackTrainer = "TRAINER"
	FeedbackClass   = "CLASS"
)

// Feedback is a member's rating of a trainer or a class. One feedback per
// (trainee, type, target).
type Feedback struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TraineeID  primitive.ObjectID  `bson:"traineeId" json:"traineeId"`
	TrainerID  *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	ClassID    *primitive.ObjectID `bson:"classId,omitempty" json:"classId,omitempty"`
	Type       string              `bson:"type" json:"type"`
	Rating     int                 `bson:"rating" json:"rating"` // 1..5
	Comment    string              `bson:"comment,omitempty" json:"comment,omitempty"`
	Suggestion string              `bson:"suggestion,omitempty" json:"suggestion,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"created_at"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updated_at"`
}

// OTP is a short-lived one-time code for password reset.
type OTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Code      string             `bson:"otp" json:"-"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	Verified  bool               `bson:"verified" json:"verified"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
