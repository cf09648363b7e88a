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

// FeedbackService stores member ratings of trainers and classes. A trainee
// has at most one feedback per target; submitting again replaces it.
type FeedbackService struct {
	db  *mongo.Database
	hub *Hub
}

func NewFeedbackService(db *mongo.Database, hub *Hub) *FeedbackService {
	return &FeedbackService{db: db, hub: hub}
}

func (s *FeedbackService) coll() *mongo.Collection {
	return s.db.Collection(models.CollFeedback)
}

type SubmitFeedbackInput struct {
	TraineeID  string `json:"traineeId" binding:"required"`
	TrainerID  string `json:"trainerId"`
	ClassID    string `json:"classId"`
	Type       string `json:"type" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
	Suggestion string `json:"suggestion"`
}

func (s *FeedbackService) Submit(ctx context.Context, in SubmitFeedbackInput) (*models.Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, response.NewValidation("rating must be between 1 and 5")
	}
	trainee, err := parseObjectID(in.TraineeID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"traineeId": trainee, "type": in.Type}
	set := bson.M{
		"rating":     in.Rating,
		"comment":    in.Comment,
		"suggestion": in.Suggestion,
		"updatedAt":  time.Now(),
	}
	switch in.Type {
	case models.FeedbackTrainer:
		if in.TrainerID == "" {
			return nil, response.NewValidation("trainerId is required for trainer feedback")
		}
		trainerID, err := parseObjectID(in.TrainerID)
		if err != nil {
			return nil, err
		}
		filter["trainerId"] = trainerID
		set["trainerId"] = trainerID
	case models.FeedbackClass:
		if in.ClassID == "" {
			return nil, response.NewValidation("classId is required for class feedback")
		}
		classID, err := parseObjectID(in.ClassID)
		if err != nil {
			return nil, err
		}
		filter["classId"] = classID
		set["classId"] = classID
	default:
		return nil, response.NewValidation("invalid feedback type: " + in.Type)
	}

	_, err = s.coll().UpdateOne(ctx, filter,
		bson.M{
			"$set": set,
			"$setOnInsert": bson.M{
				"traineeId": trainee,
				"type":      in.Type,
				"createdAt": time.Now(),
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	var fb models.Feedback
	if err := s.coll().FindOne(ctx, filter).Decode(&fb); err != nil {
		return nil, err
	}
	s.hub.Broadcast(Event{Type: EventFeedbackSubmitted, Payload: fb})
	return &fb, nil
}

func (s *FeedbackService) ListForTrainer(ctx context.Context, trainerID string) ([]models.Feedback, error) {
	tid, err := parseObjectID(trainerID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, bson.M{"type": models.FeedbackTrainer, "trainerId": tid})
}

func (s *FeedbackService) ListAll(ctx context.Context) ([]models.Feedback, error) {
	return s.list(ctx, bson.M{})
}

func (s *FeedbackService) list(ctx context.Context, query bson.M) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll().Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var out []models.Feedback
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type TrainerRating struct {
	TrainerID primitive.ObjectID `bson:"_id" json:"trainerId"`
	Average   float64            `bson:"average" json:"average"`
	Count     int64              `bson:"count" json:"count"`
}

// TrainerRatings aggregates the average rating per trainer.
func (s *FeedbackService) TrainerRatings(ctx context.Context) ([]TrainerRating, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"type": models.FeedbackTrainer}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$trainerId",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"average": -1}}},
	}
	cursor, err := s.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var out []TrainerRating
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
