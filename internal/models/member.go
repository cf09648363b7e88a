package models

import (
	"encoding/json"
	"time"

	"github.com/Senthuron/Gym-Backend/internal/billing"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member statuses. "Deactive" is the historical spelling kept for wire
// compatibility with existing stored documents.
const (
	MemberStatusActive   = "active"
	MemberStatusDeactive = "Deactive"
	MemberStatusPending  = "pending"
)

// Class types and difficulty levels for member classes.
const (
	ClassTypeCardio      = "Cardio"
	ClassTypeStrength    = "Strength"
	ClassTypeYoga        = "Yoga"
	ClassTypeFlexibility = "Flexibility"
	ClassTypeHIIT        = "HIIT"
	ClassTypeOther       = "Other"

	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Exercise is a single exercise inside a workout day.
type Exercise struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Sets  string `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps  string `bson:"reps,omitempty" json:"reps,omitempty"`
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutDay groups exercises for one weekday.
type WorkoutDay struct {
	Day       string     `bson:"day,omitempty" json:"day,omitempty"`
	Exercises []Exercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
}

// EmbeddedWorkoutPlan is the workout plan stored inline on a member document.
type EmbeddedWorkoutPlan struct {
	WeeklySchedule []WorkoutDay `bson:"weeklySchedule,omitempty" json:"weeklySchedule,omitempty"`
	TrainerNotes   string       `bson:"trainerNotes,omitempty" json:"trainerNotes,omitempty"`
}

// MealTiming is one meal slot in a diet plan.
type MealTiming struct {
	Meal  string `bson:"meal,omitempty" json:"meal,omitempty"`
	Time  string `bson:"time,omitempty" json:"time,omitempty"`
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// EmbeddedDietPlan is the diet plan stored inline on a member document.
type EmbeddedDietPlan struct {
	DietChart      string       `bson:"dietChart,omitempty" json:"dietChart,omitempty"`
	MealTiming     []MealTiming `bson:"mealTiming,omitempty" json:"mealTiming,omitempty"`
	NutritionNotes string       `bson:"nutritionNotes,omitempty" json:"nutritionNotes,omitempty"`
}

// Member is the member profile linked to a User identity. The user reference
// is nullable: legacy flows created members before their identity existed and
// the reconciler links or heals them lazily.
type Member struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	User                *primitive.ObjectID  `bson:"user,omitempty" json:"user,omitempty"`
	Name                string               `bson:"name" json:"name"`
	Email               string               `bson:"email" json:"email"` // stored lowercase, unique
	Phone               string               `bson:"phone" json:"phone"`
	Gender              string               `bson:"gender,omitempty" json:"gender,omitempty"`
	Age                 int                  `bson:"age,omitempty" json:"age,omitempty"`
	Weight              float64              `bson:"weight,omitempty" json:"weight,omitempty"`
	MembershipStartDate time.Time            `bson:"membershipStartDate" json:"membershipStartDate"`
	MembershipEndDate   time.Time            `bson:"membershipEndDate" json:"membershipEndDate"`
	Plan                string               `bson:"plan" json:"plan"`
	Class               string               `bson:"class" json:"class"`
	ClassType           string               `bson:"classType" json:"classType"`
	DifficultyLevel     string               `bson:"difficultyLevel" json:"difficultyLevel"`
	Status              string               `bson:"status" json:"status"`
	NextBillingDate     *time.Time           `bson:"nextBillingDate,omitempty" json:"nextBillingDate,omitempty"`
	LastAttended        *time.Time           `bson:"lastAttended,omitempty" json:"lastAttended,omitempty"`
	TotalAttendance     int                  `bson:"totalAttendance" json:"totalAttendance"`
	WorkoutPlan         *EmbeddedWorkoutPlan `bson:"workoutPlan,omitempty" json:"workoutPlan,omitempty"`
	DietPlan            *EmbeddedDietPlan    `bson:"dietPlan,omitempty" json:"dietPlan,omitempty"`
	CreatedAt           time.Time            `bson:"createdAt" json:"created_at"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updated_at"`
}

// IsActive reports whether the membership is active at now. This is derived
// state, never stored.
func (m *Member) IsActive(now time.Time) bool {
	return billing.MembershipActive(m.MembershipEndDate, now)
}

// DaysUntilExpiration returns the signed days until the membership expires.
func (m *Member) DaysUntilExpiration(now time.Time) int {
	return billing.DaysUntilExpiration(m.MembershipEndDate, now)
}

// MarshalJSON adds the derived isActive and daysUntilExpiration fields so
// API consumers never see stale stored state.
func (m Member) MarshalJSON() ([]byte, error) {
	type alias Member
	now := time.Now()
	return json.Marshal(struct {
		alias
		IsActive            bool `json:"isActive"`
		DaysUntilExpiration int  `json:"daysUntilExpiration"`
	}{
		alias:               alias(m),
		IsActive:            m.IsActive(now),
		DaysUntilExpiration: m.DaysUntilExpiration(now),
	})
}
