package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

// AttendanceService records member attendance at sessions. One document per
// (session, member) pair; marking twice updates in place.
type AttendanceService struct {
	db  *mongo.Database
	hub *Hub
}

func NewAttendanceService(db *mongo.Database, hub *Hub) *AttendanceService {
	return &AttendanceService{db: db, hub: hub}
}

func (s *AttendanceService) coll() *mongo.Collection {
	return s.db.Collection(models.CollAttendance)
}

// CanManageSessionAttendance reports whether an account may mark or list
// attendance for a session. Trainer accounts are restricted to sessions
// assigned to them; every other staff role passes.
func CanManageSessionAttendance(role string, session *models.Session, trainer *models.Trainer) bool {
	if role != models.RoleTrainer {
		return true
	}
	return trainer != nil && trainer.ID == session.Trainer
}

// authorizeSessionActor enforces CanManageSessionAttendance for the calling
// account, resolving trainer callers to their trainer profile.
func (s *AttendanceService) authorizeSessionActor(ctx context.Context, session *models.Session, actorUserID, actorRole string) error {
	if actorRole != models.RoleTrainer {
		return nil
	}
	uid, err := parseObjectID(actorUserID)
	if err != nil {
		return err
	}
	var trainer models.Trainer
	err = s.db.Collection(models.CollTrainers).FindOne(ctx, bson.M{"user": uid}).Decode(&trainer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return response.NewForbidden("no trainer profile for this account")
	}
	if err != nil {
		return err
	}
	if !CanManageSessionAttendance(actorRole, session, &trainer) {
		return response.NewForbidden("trainers may only manage attendance for their own sessions")
	}
	return nil
}

// MarkAttendance upserts the attendance record for a member at a session.
// The first present mark also bumps the member's attendance counters.
func (s *AttendanceService) MarkAttendance(ctx context.Context, sessionID, memberID string, present bool, actorUserID, actorRole string) (*models.Attendance, error) {
	sid, err := parseObjectID(sessionID)
	if err != nil {
		return nil, err
	}
	mid, err := parseObjectID(memberID)
	if err != nil {
		return nil, err
	}

	var session models.Session
	err = s.db.Collection(models.CollSessions).FindOne(ctx, bson.M{"_id": sid}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, response.NewNotFound("session not found")
	}
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionCancelled {
		return nil, response.NewValidation("cannot mark attendance for a cancelled session")
	}
	if err := s.authorizeSessionActor(ctx, &session, actorUserID, actorRole); err != nil {
		return nil, err
	}

	var member models.Member
	err = s.db.Collection(models.CollMembers).FindOne(ctx, bson.M{"_id": mid}).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, response.NewNotFound("member not found")
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res, err := s.coll().UpdateOne(ctx,
		bson.M{"sessionId": sid, "memberId": mid},
		bson.M{
			"$set":         bson.M{"isPresent": present, "dateAttended": now, "updatedAt": now},
			"$setOnInsert": bson.M{"sessionId": sid, "memberId": mid, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	if present && res.UpsertedCount > 0 {
		_, err = s.db.Collection(models.CollMembers).UpdateOne(ctx,
			bson.M{"_id": mid},
			bson.M{
				"$set": bson.M{"lastAttended": now, "updatedAt": now},
				"$inc": bson.M{"totalAttendance": 1},
			},
		)
		if err != nil {
			return nil, err
		}
	}

	var att models.Attendance
	if err := s.coll().FindOne(ctx, bson.M{"sessionId": sid, "memberId": mid}).Decode(&att); err != nil {
		return nil, err
	}
	if member.User != nil {
		s.hub.EmitToUser(member.User.Hex(), Event{Type: EventAttendanceMarked, Payload: att})
	}
	return &att, nil
}

func (s *AttendanceService) ListSessionAttendance(ctx context.Context, sessionID, actorUserID, actorRole string) ([]models.Attendance, error) {
	sid, err := parseObjectID(sessionID)
	if err != nil {
		return nil, err
	}
	var session models.Session
	err = s.db.Collection(models.CollSessions).FindOne(ctx, bson.M{"_id": sid}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, response.NewNotFound("session not found")
	}
	if err != nil {
		return nil, err
	}
	if err := s.authorizeSessionActor(ctx, &session, actorUserID, actorRole); err != nil {
		return nil, err
	}
	return s.list(ctx, bson.M{"sessionId": sid})
}

func (s *AttendanceService) ListMemberAttendance(ctx context.Context, memberID string) ([]models.Attendance, error) {
	mid, err := parseObjectID(memberID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, bson.M{"memberId": mid})
}

func (s *AttendanceService) list(ctx context.Context, query bson.M) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateAttended", Value: -1}})
	cursor, err := s.coll().Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var records []models.Attendance
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
