package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Senthuron/Gym-Backend/pkg/response"
)

// parseObjectID converts a hex path or token parameter into an ObjectID,
// reporting malformed input as a validation error rather than a 500.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, response.NewValidation("invalid id: " + id)
	}
	return oid, nil
}
