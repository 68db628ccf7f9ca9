// Package suggest is the contract for the external AI suggestion
// collaborator. The application never depends on its output for the
// correctness of onboarding or gamification; the service may be absent
// and callers must tolerate ErrUnavailable.
package suggest

import (
	"context"
	"errors"

	"arete/coaching-app/internal/domain"
)

var ErrUnavailable = errors.New("suggestion service unavailable")

// WorkoutSuggestion is the structured result for a sport-specific
// workout prompt.
type WorkoutSuggestion struct {
	Title     string   `json:"title"`
	Rationale string   `json:"rationale"`
	Exercises []string `json:"exercises"`
}

// Service defines the interface for the suggestion collaborator.
// This abstraction allows swapping the disabled stub with the real
// integration without refactoring callers.
type Service interface {
	SuggestWorkout(ctx context.Context, profile domain.UserProfile, sport string) (*WorkoutSuggestion, error)
	SummarizeProgress(ctx context.Context, weights []float64, goal string) (string, error)
}

// Disabled implements Service for deployments without a suggestion
// endpoint configured.
type Disabled struct{}

func NewDisabled() *Disabled {
	return &Disabled{}
}

func (*Disabled) SuggestWorkout(ctx context.Context, profile domain.UserProfile, sport string) (*WorkoutSuggestion, error) {
	return nil, ErrUnavailable
}

func (*Disabled) SummarizeProgress(ctx context.Context, weights []float64, goal string) (string, error) {
	return "", ErrUnavailable
}
