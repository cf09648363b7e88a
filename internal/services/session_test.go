package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

func TestCreateSessionValidation(t *testing.T) {
	svc := NewSessionService(nil, NewHub())
	base := CreateSessionInput{
		Name:      "Morning HIIT",
		Trainer:   primitive.NewObjectID().Hex(),
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "06:30",
		Capacity:  20,
	}

	tests := []struct {
		name   string
		mutate func(*CreateSessionInput)
	}{
		{"zero capacity", func(in *CreateSessionInput) { in.Capacity = 0 }},
		{"negative capacity", func(in *CreateSessionInput) { in.Capacity = -5 }},
		{"bad start time", func(in *CreateSessionInput) { in.StartTime = "25:99" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			if _, err := svc.CreateSession(context.Background(), in); !response.IsValidation(err) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestUpdateSessionFieldsRejectsZeroCapacity(t *testing.T) {
	zero := 0
	if _, err := (UpdateSessionInput{Capacity: &zero}).fields(); !response.IsValidation(err) {
		t.Errorf("error = %v, want validation error for zero capacity", err)
	}
}

func TestUpdateSessionFields(t *testing.T) {
	capacity := 12
	starting := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	fields, err := (UpdateSessionInput{
		Capacity:     &capacity,
		StartingDate: &starting,
		Status:       models.SessionCompleted,
	}).fields()
	if err != nil {
		t.Fatalf("fields() error = %v", err)
	}
	if fields["capacity"] != 12 {
		t.Errorf("capacity = %v, want 12", fields["capacity"])
	}
	if got, ok := fields["startingdate"].(time.Time); !ok || !got.Equal(starting) {
		t.Errorf("startingdate = %v, want %v", fields["startingdate"], starting)
	}
	if fields["status"] != models.SessionCompleted {
		t.Errorf("status = %v, want %q", fields["status"], models.SessionCompleted)
	}

	empty, err := (UpdateSessionInput{}).fields()
	if err != nil {
		t.Fatalf("fields() on empty input: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty input produced fields %v", empty)
	}
}
