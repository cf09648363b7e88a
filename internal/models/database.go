package models

import (
	"context"
	"fmt"
	"time"

	"github.com/Senthuron/Gym-Backend/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. One flat collection per entity type; references between
// collections are plain ObjectIDs, not enforced foreign keys.
const (
	CollUsers               = "users"
	CollMembers             = "members"
	CollTrainers            = "trainers"
	CollEmployees           = "employees"
	CollSessions            = "sessions"
	CollAttendance          = "attendances"
	CollEmployeeAttendance  = "employee_attendances"
	CollWorkoutPlans        = "workout_plans"
	CollDietPlans           = "diet_plans"
	CollFeedback            = "feedbacks"
	CollOTPs                = "otps"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// InitDB connects to MongoDB and keeps a process-wide database handle. The
// driver's connection pool is shared by all requests.
func InitDB(cfg *config.MongoConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	client = c
	db = c.Database(cfg.Database)
	return nil
}

// GetDB returns the shared database handle.
func GetDB() *mongo.Database {
	return db
}

// GetClient returns the shared client, for health pings.
func GetClient() *mongo.Client {
	return client
}

// CloseDB disconnects the client. Called on shutdown.
func CloseDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the unique and query indexes the application relies
// on. Email uniqueness is enforced independently in the users collection and
// in each profile collection; emails are stored lowercase so the unique
// indexes are effectively case-insensitive.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := func(key string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	indexes := map[string][]mongo.IndexModel{
		CollUsers: {unique("email")},
		CollMembers: {
			unique("email"),
			// Sparse so unlinked member profiles are tolerated; at most one
			// profile per user otherwise.
			{
				Keys:    bson.D{{Key: "user", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
			{Keys: bson.D{{Key: "membershipEndDate", Value: 1}}},
		},
		CollTrainers: {
			unique("email"),
			// Sparse so legacy trainer profiles without a linked user are
			// tolerated; at most one profile per user otherwise.
			{
				Keys:    bson.D{{Key: "user", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
		},
		CollEmployees: {
			unique("email"),
			unique("employeeId"),
		},
		CollSessions: {
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}}},
		},
		CollAttendance: {
			{
				Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "memberId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollEmployeeAttendance: {
			{
				Keys:    bson.D{{Key: "employee", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollOTPs: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", coll, err)
		}
	}
	return nil
}
