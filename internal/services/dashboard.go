package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Senthuron/Gym-Backend/internal/billing"
	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

// DashboardService aggregates the admin overview counters.
type DashboardService struct {
	db *mongo.Database
}

func NewDashboardService(db *mongo.Database) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	TotalMembers    int64 `json:"totalMembers"`
	ActiveMembers   int64 `json:"activeMembers"`
	ExpiringSoon    int64 `json:"expiringSoon"`
	TotalTrainers   int64 `json:"totalTrainers"`
	TotalStaff      int64 `json:"totalStaff"`
	SessionsToday   int64 `json:"sessionsToday"`
	AttendanceToday int64 `json:"attendanceToday"`
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	dayStart := DayOf(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	stats := &DashboardStats{}
	counts := []struct {
		dst   *int64
		coll  string
		query bson.M
	}{
		{&stats.TotalMembers, models.CollMembers, bson.M{}},
		{&stats.ActiveMembers, models.CollMembers, bson.M{"membershipEndDate": bson.M{"$gte": now}}},
		{&stats.ExpiringSoon, models.CollMembers, bson.M{
			"membershipEndDate": bson.M{"$gte": now, "$lte": now.AddDate(0, 0, expiringWindowDays)},
		}},
		{&stats.TotalTrainers, models.CollTrainers, bson.M{}},
		{&stats.TotalStaff, models.CollEmployees, bson.M{}},
		{&stats.SessionsToday, models.CollSessions, bson.M{
			"date":   bson.M{"$gte": dayStart, "$lt": dayEnd},
			"status": bson.M{"$ne": models.SessionCancelled},
		}},
		{&stats.AttendanceToday, models.CollAttendance, bson.M{
			"dateAttended": bson.M{"$gte": dayStart, "$lt": dayEnd},
			"isPresent":    true,
		}},
	}
	for _, c := range counts {
		n, err := s.db.Collection(c.coll).CountDocuments(ctx, c.query)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return stats, nil
}

// TrainerStats is the overview for one trainer's portal home.
type TrainerStats struct {
	UpcomingSessions int64    `json:"upcomingSessions"`
	TotalSessions    int64    `json:"totalSessions"`
	ActivePlans      int64    `json:"activePlans"`
	AverageRating    *float64 `json:"averageRating"`
}

// TrainerStatsFor aggregates counters for the trainer identified by their
// portal user id.
func (s *DashboardService) TrainerStatsFor(ctx context.Context, userID string) (*TrainerStats, error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	var trainer models.Trainer
	err = s.db.Collection(models.CollTrainers).FindOne(ctx, bson.M{"user": uid}).Decode(&trainer)
	if err == mongo.ErrNoDocuments {
		return nil, response.NewNotFound("trainer profile not found")
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &TrainerStats{}
	if stats.UpcomingSessions, err = s.db.Collection(models.CollSessions).CountDocuments(ctx, bson.M{
		"trainer": trainer.ID,
		"date":    bson.M{"$gte": DayOf(now)},
		"status":  models.SessionScheduled,
	}); err != nil {
		return nil, err
	}
	if stats.TotalSessions, err = s.db.Collection(models.CollSessions).CountDocuments(ctx, bson.M{
		"trainer": trainer.ID,
	}); err != nil {
		return nil, err
	}
	if stats.ActivePlans, err = s.db.Collection(models.CollWorkoutPlans).CountDocuments(ctx, bson.M{
		"trainerId": uid,
	}); err != nil {
		return nil, err
	}

	// Average rating across this trainer's feedback, nil when unrated.
	cursor, err := s.db.Collection(models.CollFeedback).Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"type": models.FeedbackTrainer, "trainerId": trainer.ID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": "$rating"}}}},
	})
	if err != nil {
		return nil, err
	}
	var agg []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.All(ctx, &agg); err != nil {
		return nil, err
	}
	if len(agg) > 0 {
		stats.AverageRating = &agg[0].Avg
	}
	return stats, nil
}

// MemberStats is the overview for one member's portal home.
type MemberStats struct {
	TotalAttendance  int        `json:"totalAttendance"`
	LastAttended     *time.Time `json:"lastAttended"`
	IsActive         bool       `json:"isActive"`
	DaysLeft         int        `json:"daysLeft"`
	UpcomingSessions int64      `json:"upcomingSessions"`
}

// MemberStatsFor aggregates counters for the member identified by their
// portal user id.
func (s *DashboardService) MemberStatsFor(ctx context.Context, userID string) (*MemberStats, error) {
	uid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	var member models.Member
	err = s.db.Collection(models.CollMembers).FindOne(ctx, bson.M{"user": uid}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, response.NewNotFound("member profile not found")
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &MemberStats{
		TotalAttendance: member.TotalAttendance,
		LastAttended:    member.LastAttended,
		IsActive:        billing.MembershipActive(member.MembershipEndDate, now),
		DaysLeft:        billing.DaysLeftClamped(member.MembershipEndDate, now),
	}
	if stats.UpcomingSessions, err = s.db.Collection(models.CollSessions).CountDocuments(ctx, bson.M{
		"date":   bson.M{"$gte": DayOf(now)},
		"status": models.SessionScheduled,
	}); err != nil {
		return nil, err
	}
	return stats, nil
}
