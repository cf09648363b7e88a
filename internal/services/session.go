package services

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

var startTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// SessionService manages scheduled classes.
type SessionService struct {
	db  *mongo.Database
	hub *Hub
}

func NewSessionService(db *mongo.Database, hub *Hub) *SessionService {
	return &SessionService{db: db, hub: hub}
}

func (s *SessionService) coll() *mongo.Collection {
	return s.db.Collection(models.CollSessions)
}

type CreateSessionInput struct {
	Name         string     `json:"name" binding:"required"`
	Trainer      string     `json:"trainer" binding:"required"`
	Date         time.Time  `json:"date" binding:"required"`
	StartTime    string     `json:"startTime" binding:"required"`
	Capacity     int        `json:"capacity"`
	StartingDate *time.Time `json:"startingdate"`
	Location     string     `json:"location"`
}

func (s *SessionService) CreateSession(ctx context.Context, in CreateSessionInput) (*models.Session, error) {
	trainerID, err := parseObjectID(in.Trainer)
	if err != nil {
		return nil, err
	}
	if !startTimeRe.MatchString(in.StartTime) {
		return nil, response.NewValidation("startTime must be HH:MM")
	}
	if in.Capacity < 1 {
		return nil, response.NewValidation("capacity must be at least 1")
	}

	now := time.Now()
	session := &models.Session{
		ID:           primitive.NewObjectID(),
		Name:         in.Name,
		Trainer:      trainerID,
		Date:         in.Date,
		StartTime:    in.StartTime,
		Capacity:     in.Capacity,
		Status:       models.SessionScheduled,
		StartingDate: in.StartingDate,
		Location:     in.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.coll().InsertOne(ctx, session); err != nil {
		return nil, err
	}
	s.hub.Broadcast(Event{Type: EventSessionCreated, Payload: session})
	return session, nil
}

// SessionFilter narrows a session listing. Zero values mean "no constraint".
type SessionFilter struct {
	Trainer string
	Status  string
	From    time.Time
	To      time.Time
}

func (s *SessionService) ListSessions(ctx context.Context, filter SessionFilter) ([]models.Session, error) {
	query := bson.M{}
	if filter.Trainer != "" {
		trainerID, err := parseObjectID(filter.Trainer)
		if err != nil {
			return nil, err
		}
		query["trainer"] = trainerID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateRange["$lte"] = filter.To
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	return findAllSessions(ctx, s.coll(), query, opts)
}

func findAllSessions(ctx context.Context, coll *mongo.Collection, query bson.M, opts *options.FindOptions) ([]models.Session, error) {
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *SessionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var session models.Session
	err = s.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, response.NewNotFound("session not found")
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

type UpdateSessionInput struct {
	Name         string     `json:"name"`
	Date         *time.Time `json:"date"`
	StartTime    string     `json:"startTime"`
	Capacity     *int       `json:"capacity"`
	Status       string     `json:"status"`
	StartingDate *time.Time `json:"startingdate"`
	Location     string     `json:"location"`
}

// fields validates the update and builds the $set document. An empty result
// means nothing changes.
func (in UpdateSessionInput) fields() (bson.M, error) {
	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Date != nil {
		fields["date"] = *in.Date
	}
	if in.StartTime != "" {
		if !startTimeRe.MatchString(in.StartTime) {
			return nil, response.NewValidation("startTime must be HH:MM")
		}
		fields["startTime"] = in.StartTime
	}
	if in.Capacity != nil {
		if *in.Capacity < 1 {
			return nil, response.NewValidation("capacity must be at least 1")
		}
		fields["capacity"] = *in.Capacity
	}
	if in.StartingDate != nil {
		fields["startingdate"] = *in.StartingDate
	}
	if in.Status != "" {
		switch in.Status {
		case models.SessionScheduled, models.SessionCancelled, models.SessionCompleted:
		default:
			return nil, response.NewValidation("invalid session status: " + in.Status)
		}
		fields["status"] = in.Status
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}
	return fields, nil
}

func (s *SessionService) UpdateSession(ctx context.Context, id string, in UpdateSessionInput) (*models.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := in.fields()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return session, nil
	}
	fields["updatedAt"] = time.Now()

	if _, err := s.coll().UpdateOne(ctx, bson.M{"_id": session.ID}, bson.M{"$set": fields}); err != nil {
		return nil, err
	}
	updated, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(Event{Type: EventSessionUpdated, Payload: updated})
	return updated, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.coll().DeleteOne(ctx, bson.M{"_id": session.ID}); err != nil {
		return err
	}
	// Attendance for a deleted session is left in place for history.
	return nil
}
