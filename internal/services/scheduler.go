package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
)

// statusRefreshSpec runs the nightly refresh at 02:00 server time.
const statusRefreshSpec = "0 2 * * *"

// SchedulerService runs the periodic maintenance jobs: deactivating expired
// memberships and completing past sessions.
type SchedulerService struct {
	db   *mongo.Database
	cron *cron.Cron
}

func NewSchedulerService(db *mongo.Database) *SchedulerService {
	return &SchedulerService{db: db, cron: cron.New()}
}

func (s *SchedulerService) Start() error {
	if _, err := s.cron.AddFunc(statusRefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.RefreshMemberStatuses(ctx); err != nil {
			logger.Error().Err(err).Msg("member status refresh failed")
		}
		if err := s.CompletePastSessions(ctx); err != nil {
			logger.Error().Err(err).Msg("session completion sweep failed")
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info().Str("spec", statusRefreshSpec).Msg("scheduler started")
	return nil
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("scheduler stopped")
}

// RefreshMemberStatuses flips expired active members to Deactive. The stored
// status field trails the derived isActive flag; this sweep is a convenience
// for queries against the stored field, not the source of truth.
func (s *SchedulerService) RefreshMemberStatuses(ctx context.Context) error {
	now := time.Now()
	res, err := s.db.Collection(models.CollMembers).UpdateMany(ctx,
		bson.M{
			"membershipEndDate": bson.M{"$lt": now},
			"status":            models.MemberStatusActive,
		},
		bson.M{"$set": bson.M{"status": models.MemberStatusDeactive, "updatedAt": now}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount > 0 {
		logger.Info().Int64("members", res.ModifiedCount).Msg("deactivated expired memberships")
	}
	return nil
}

// CompletePastSessions marks scheduled sessions whose date has passed as
// completed.
func (s *SchedulerService) CompletePastSessions(ctx context.Context) error {
	now := time.Now()
	res, err := s.db.Collection(models.CollSessions).UpdateMany(ctx,
		bson.M{
			"date":   bson.M{"$lt": DayOf(now)},
			"status": models.SessionScheduled,
		},
		bson.M{"$set": bson.M{"status": models.SessionCompleted, "updatedAt": now}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount > 0 {
		logger.Info().Int64("sessions", res.ModifiedCount).Msg("completed past sessions")
	}
	return nil
}
