package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Senthuron/Gym-Backend/internal/models"
)

// The store interfaces abstract the per-collection persistence operations the
// reconciler needs. Absent documents are reported as (nil, nil); unique index
// violations surface as models.ErrDuplicateKey.

type IdentityStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	Insert(ctx context.Context, u *models.User) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MemberStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
	Insert(ctx context.Context, m *models.Member) error
	EnsureForUser(ctx context.Context, userID primitive.ObjectID, seed *models.Member) (*models.Member, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	ApplyByUser(ctx context.Context, userID primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type TrainerStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Trainer, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Trainer, error)
	FindByEmail(ctx context.Context, email string) (*models.Trainer, error)
	List(ctx context.Context) ([]models.Trainer, error)
	Insert(ctx context.Context, t *models.Trainer) error
	EnsureForUser(ctx context.Context, userID primitive.ObjectID, seed *models.Trainer) (*models.Trainer, error)
	ApplyByUser(ctx context.Context, userID primitive.ObjectID, fields bson.M, upsert bool) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type EmployeeStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	Insert(ctx context.Context, e *models.Employee) error
	EnsureForEmail(ctx context.Context, email string, seed *models.Employee) (*models.Employee, error)
	ApplyByUser(ctx context.Context, userID primitive.ObjectID, fields bson.M) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	LastEmployeeCode(ctx context.Context) (string, error)
}

// Compile-time checks that the Mongo implementations satisfy the interfaces.
var (
	_ IdentityStore = (*models.MongoIdentityStore)(nil)
	_ MemberStore   = (*models.MongoMemberStore)(nil)
	_ TrainerStore  = (*models.MongoTrainerStore)(nil)
	_ EmployeeStore = (*models.MongoEmployeeStore)(nil)
)
