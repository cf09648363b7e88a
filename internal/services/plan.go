package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

// PlanService manages standalone workout and diet plans plus the copies
// embedded on member documents.
type PlanService struct {
	db  *mongo.Database
	hub *Hub
}

func NewPlanService(db *mongo.Database, hub *Hub) *PlanService {
	return &PlanService{db: db, hub: hub}
}

type AssignWorkoutPlanInput struct {
	Title       string              `json:"title" binding:"required"`
	Difficulty  string              `json:"difficulty"`
	TrainerID   string              `json:"trainerId" binding:"required"`
	TraineeID   string              `json:"traineeId" binding:"required"`
	StartDate   *time.Time          `json:"startDate"`
	EndDate     *time.Time          `json:"endDate"`
	WorkoutDays []models.WorkoutDay `json:"workoutDays"`
}

func (s *PlanService) AssignWorkoutPlan(ctx context.Context, in AssignWorkoutPlanInput) (*models.WorkoutPlan, error) {
	trainerID, err := parseObjectID(in.TrainerID)
	if err != nil {
		return nil, err
	}
	traineeID, err := parseObjectID(in.TraineeID)
	if err != nil {
		return nil, err
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, response.NewValidation("endDate must not be before startDate")
	}

	now := time.Now()
	plan := &models.WorkoutPlan{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Difficulty:  in.Difficulty,
		TrainerID:   trainerID,
		TraineeID:   traineeID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		WorkoutDays: in.WorkoutDays,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.db.Collection(models.CollWorkoutPlans).InsertOne(ctx, plan); err != nil {
		return nil, err
	}
	s.hub.EmitToUser(traineeID.Hex(), Event{Type: EventPlanAssigned, Payload: plan})
	return plan, nil
}

func (s *PlanService) ListWorkoutPlansForTrainee(ctx context.Context, traineeID string) ([]models.WorkoutPlan, error) {
	tid, err := parseObjectID(traineeID)
	if err != nil {
		return nil, err
	}
	return listPlans[models.WorkoutPlan](ctx, s.db.Collection(models.CollWorkoutPlans), bson.M{"traineeId": tid})
}

func (s *PlanService) ListWorkoutPlansForTrainer(ctx context.Context, trainerID string) ([]models.WorkoutPlan, error) {
	tid, err := parseObjectID(trainerID)
	if err != nil {
		return nil, err
	}
	return listPlans[models.WorkoutPlan](ctx, s.db.Collection(models.CollWorkoutPlans), bson.M{"trainerId": tid})
}

func (s *PlanService) DeleteWorkoutPlan(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(models.CollWorkoutPlans).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return response.NewNotFound("workout plan not found")
	}
	return nil
}

type AssignDietPlanInput struct {
	TrainerID      string              `json:"trainerId" binding:"required"`
	TraineeID      string              `json:"traineeId" binding:"required"`
	DietChart      string              `json:"dietChart"`
	MealTiming     []models.MealTiming `json:"mealTiming"`
	NutritionNotes string              `json:"nutritionNotes"`
}

func (s *PlanService) AssignDietPlan(ctx context.Context, in AssignDietPlanInput) (*models.DietPlan, error) {
	trainerID, err := parseObjectID(in.TrainerID)
	if err != nil {
		return nil, err
	}
	traineeID, err := parseObjectID(in.TraineeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plan := &models.DietPlan{
		ID:             primitive.NewObjectID(),
		TrainerID:      trainerID,
		TraineeID:      traineeID,
		DietChart:      in.DietChart,
		MealTiming:     in.MealTiming,
		NutritionNotes: in.NutritionNotes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.db.Collection(models.CollDietPlans).InsertOne(ctx, plan); err != nil {
		return nil, err
	}
	s.hub.EmitToUser(traineeID.Hex(), Event{Type: EventPlanAssigned, Payload: plan})
	return plan, nil
}

func (s *PlanService) ListDietPlansForTrainee(ctx context.Context, traineeID string) ([]models.DietPlan, error) {
	tid, err := parseObjectID(traineeID)
	if err != nil {
		return nil, err
	}
	return listPlans[models.DietPlan](ctx, s.db.Collection(models.CollDietPlans), bson.M{"traineeId": tid})
}

// SetMemberWorkoutPlan writes the embedded workout plan on a member document.
func (s *PlanService) SetMemberWorkoutPlan(ctx context.Context, memberID string, plan models.EmbeddedWorkoutPlan) error {
	return s.setEmbedded(ctx, memberID, bson.M{"workoutPlan": plan})
}

// SetMemberDietPlan writes the embedded diet plan on a member document.
func (s *PlanService) SetMemberDietPlan(ctx context.Context, memberID string, plan models.EmbeddedDietPlan) error {
	return s.setEmbedded(ctx, memberID, bson.M{"dietPlan": plan})
}

func (s *PlanService) setEmbedded(ctx context.Context, memberID string, fields bson.M) error {
	mid, err := parseObjectID(memberID)
	if err != nil {
		return err
	}
	fields["updatedAt"] = time.Now()
	res, err := s.db.Collection(models.CollMembers).UpdateOne(ctx, bson.M{"_id": mid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return response.NewNotFound("member not found")
	}

	var member models.Member
	if err := s.db.Collection(models.CollMembers).FindOne(ctx, bson.M{"_id": mid}).Decode(&member); err == nil && member.User != nil {
		s.hub.EmitToUser(member.User.Hex(), Event{Type: EventPlanAssigned, Payload: member})
	}
	return nil
}

func listPlans[T any](ctx context.Context, coll *mongo.Collection, query bson.M) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
