package services

import (
	"context"
	"errors"
	"testing"
)

func TestRunSagaAllStepsSucceed(t *testing.T) {
	var order []string
	err := RunSaga(context.Background(), []SagaStep{
		{Name: "a", Run: func(context.Context) error { order = append(order, "a"); return nil }},
		{Name: "b", Run: func(context.Context) error { order = append(order, "b"); return nil }},
	})
	if err != nil {
		t.Fatalf("RunSaga() error = %v", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("steps ran in order %v, want [a b]", order)
	}
}

func TestRunSagaCompensatesInReverseOrder(t *testing.T) {
	boom := errors.New("boom")
	var undone []string
	err := RunSaga(context.Background(), []SagaStep{
		{
			Name:       "a",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { undone = append(undone, "a"); return nil },
		},
		{
			Name:       "b",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { undone = append(undone, "b"); return nil },
		},
		{
			Name: "c",
			Run:  func(context.Context) error { return boom },
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunSaga() error = %v, want %v", err, boom)
	}
	if len(undone) != 2 || undone[0] != "b" || undone[1] != "a" {
		t.Errorf("compensations ran as %v, want [b a]", undone)
	}
}

func TestRunSagaFailedStepIsNotCompensated(t *testing.T) {
	boom := errors.New("boom")
	compensated := false
	err := RunSaga(context.Background(), []SagaStep{
		{
			Name:       "only",
			Run:        func(context.Context) error { return boom },
			Compensate: func(context.Context) error { compensated = true; return nil },
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunSaga() error = %v, want %v", err, boom)
	}
	if compensated {
		t.Error("the failing step's own compensation ran; it must not")
	}
}

func TestRunSagaCompensationErrorDoesNotMaskOriginal(t *testing.T) {
	boom := errors.New("boom")
	err := RunSaga(context.Background(), []SagaStep{
		{
			Name:       "a",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { return errors.New("rollback failed") },
		},
		{
			Name: "b",
			Run:  func(context.Context) error { return boom },
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunSaga() error = %v, want the original step error", err)
	}
}
