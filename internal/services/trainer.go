package services

import (
	"context"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

// TrainerService is the façade over trainer profiles. Listing repairs the
// trainer projections for every trainer identity before returning, so a
// degraded store converges just by being read.
type TrainerService struct {
	trainers TrainerStore
	users    IdentityStore
	rec      *Reconciler
}

func NewTrainerService(trainers TrainerStore, users IdentityStore, rec *Reconciler) *TrainerService {
	return &TrainerService{trainers: trainers, users: users, rec: rec}
}

func (s *TrainerService) CreateTrainer(ctx context.Context, in CreateTrainerInput) (*models.Trainer, error) {
	return s.rec.CreateTrainerWithIdentity(ctx, in)
}

// ListTrainers heals missing trainer profiles and staff records for every
// trainer identity, then returns the full profile list. Repair failures for
// one identity are logged and skipped so one bad document cannot empty the
// listing.
func (s *TrainerService) ListTrainers(ctx context.Context) ([]models.Trainer, error) {
	identities, err := s.users.ListByRole(ctx, models.RoleTrainer)
	if err != nil {
		return nil, err
	}
	for i := range identities {
		u := &identities[i]
		trainer, err := s.rec.EnsureTrainerProfile(ctx, u)
		if err != nil {
			logger.Error().Err(err).Str("email", u.Email).Msg("trainer profile repair failed")
			continue
		}
		if _, err := s.rec.EnsureStaffRecord(ctx, u, trainer); err != nil {
			logger.Error().Err(err).Str("email", u.Email).Msg("staff record repair failed")
		}
	}
	return s.trainers.List(ctx)
}

func (s *TrainerService) GetTrainer(ctx context.Context, id string) (*models.Trainer, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	t, err := s.trainers.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, response.NewNotFound("trainer not found")
	}
	return t, nil
}

// GetTrainerByUser resolves (and if needed heals) the trainer profile for an
// identity.
func (s *TrainerService) GetTrainerByUser(ctx context.Context, userID string) (*models.Trainer, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, response.NewNotFound("user not found")
	}
	if user.Role != models.RoleTrainer {
		return nil, response.NewForbidden("not a trainer account")
	}
	return s.rec.EnsureTrainerProfile(ctx, user)
}

// UpdateTrainer applies a trainer-origin update. The reconciler pushes the
// shared fields to the identity and the staff record.
func (s *TrainerService) UpdateTrainer(ctx context.Context, id string, patch TrainerPatch) (*models.Trainer, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.rec.SyncFromTrainer(ctx, oid, patch)
}

// DeleteTrainer cascades through the identity so the profile, the staff
// record and the login all go together.
func (s *TrainerService) DeleteTrainer(ctx context.Context, id string) error {
	t, err := s.GetTrainer(ctx, id)
	if err != nil {
		return err
	}
	return s.rec.CascadeDelete(ctx, t.User)
}
