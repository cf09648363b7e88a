package services

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Senthuron/Gym-Backend/internal/models"
)

func TestCanManageSessionAttendance(t *testing.T) {
	owner := models.Trainer{ID: primitive.NewObjectID()}
	other := models.Trainer{ID: primitive.NewObjectID()}
	session := models.Session{ID: primitive.NewObjectID(), Trainer: owner.ID}

	tests := []struct {
		name    string
		role    string
		trainer *models.Trainer
		want    bool
	}{
		{"admin", models.RoleAdmin, nil, true},
		{"reception", models.RoleReception, nil, true},
		{"manager", models.RoleManager, nil, true},
		{"owning trainer", models.RoleTrainer, &owner, true},
		{"another trainer", models.RoleTrainer, &other, false},
		{"trainer without profile", models.RoleTrainer, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageSessionAttendance(tt.role, &session, tt.trainer); got != tt.want {
				t.Errorf("CanManageSessionAttendance(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}
