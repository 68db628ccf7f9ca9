package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/store"
)

// OnboardingStep identifies a wizard step. Progression is linear with
// one conditional skip: students without a weight-loss goal never see
// the sports step.
type OnboardingStep int

const (
	StepBasicData OnboardingStep = iota + 1
	StepGoals
	StepConfiguration
	StepSports
	StepComplete
)

func (s OnboardingStep) String() string {
	switch s {
	case StepBasicData:
		return "basic_data"
	case StepGoals:
		return "goals"
	case StepConfiguration:
		return "configuration"
	case StepSports:
		return "sports"
	case StepComplete:
		return "complete"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// OnboardingDraft accumulates the wizard's answers. Nothing from a
// draft is persisted until the wizard completes.
type OnboardingDraft struct {
	// Basic data
	Age    int     `json:"age"`
	Gender string  `json:"gender"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`

	// Goals
	WantsWeightLoss   bool `json:"wantsWeightLoss"`
	WantsBibleReading bool `json:"wantsBibleReading"`
	WantsExtraReading bool `json:"wantsExtraReading"`

	// Configuration
	Waist              float64  `json:"waist"`
	Hips               float64  `json:"hips"`
	BiblePlanDays      int      `json:"biblePlanDays"`
	ExtraReadingGenres []string `json:"extraReadingGenres"`

	Goal       string   `json:"goal"`
	SportTypes []string `json:"sportTypes"`
}

// StepError is a recoverable validation failure scoped to one step. The
// wizard stays on the failed step; nothing is persisted.
type StepError struct {
	Step   OnboardingStep
	Reason string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("onboarding step %s: %s", e.Step, e.Reason)
}

type OnboardingService interface {
	// Advance validates the submitted step and returns the next one. On
	// a validation failure the returned step equals the submitted step
	// and the error is a *StepError. When the wizard reaches completion
	// the final profile is built, persisted and returned.
	Advance(ctx context.Context, userID string, step OnboardingStep, draft OnboardingDraft) (OnboardingStep, *domain.UserProfile, error)
}

type onboardingService struct {
	profiles *store.Durable[domain.UserProfile]
	now      func() time.Time
}

// NewOnboardingService creates an OnboardingService persisting completed
// profiles through the durable profile store.
func NewOnboardingService(profiles *store.Durable[domain.UserProfile]) OnboardingService {
	return &onboardingService{profiles: profiles, now: time.Now}
}

func (s *onboardingService) Advance(ctx context.Context, userID string, step OnboardingStep, draft OnboardingDraft) (OnboardingStep, *domain.UserProfile, error) {
	switch step {
	case StepBasicData:
		if reason := validateBasicData(draft); reason != "" {
			return StepBasicData, nil, &StepError{Step: StepBasicData, Reason: reason}
		}
		return StepGoals, nil, nil

	case StepGoals:
		if !draft.WantsWeightLoss && !draft.WantsBibleReading && !draft.WantsExtraReading {
			return StepGoals, nil, &StepError{Step: StepGoals, Reason: "select at least one goal"}
		}
		return StepConfiguration, nil, nil

	case StepConfiguration:
		if draft.WantsWeightLoss {
			if draft.Waist <= 0 {
				return StepConfiguration, nil, &StepError{Step: StepConfiguration, Reason: "waist measurement is required for the weight loss goal"}
			}
			if draft.Hips <= 0 {
				return StepConfiguration, nil, &StepError{Step: StepConfiguration, Reason: "hips measurement is required for the weight loss goal"}
			}
			return StepSports, nil, nil
		}
		// No fitness goal: sport selection is meaningless, so the
		// submission short-circuits straight to completion.
		return s.complete(ctx, userID, draft)

	case StepSports:
		// Sport selection may be empty; this step always succeeds.
		return s.complete(ctx, userID, draft)

	case StepComplete:
		return StepComplete, nil, &StepError{Step: StepComplete, Reason: "onboarding is already complete"}

	default:
		return step, nil, &StepError{Step: step, Reason: "unknown onboarding step"}
	}
}

func validateBasicData(draft OnboardingDraft) string {
	if draft.Age <= 0 {
		return "age is required"
	}
	if strings.TrimSpace(draft.Gender) == "" {
		return "gender is required"
	}
	if draft.Height <= 0 {
		return "height is required"
	}
	if draft.Weight <= 0 {
		return "weight is required"
	}
	return ""
}

// complete builds the final profile and persists it. Module activation
// is an explicit trainer action, never a consequence of onboarding
// choices, so every gate starts closed.
func (s *onboardingService) complete(ctx context.Context, userID string, draft OnboardingDraft) (OnboardingStep, *domain.UserProfile, error) {
	now := s.now().UTC()
	profile := domain.UserProfile{
		UserID: userID,
		Age:    draft.Age,
		Gender: draft.Gender,
		Height: draft.Height,
		Weight: draft.Weight,
		Measurements: domain.Measurements{
			Waist: draft.Waist,
			Hips:  draft.Hips,
		},
		Goal:                draft.Goal,
		SportTypes:          draft.SportTypes,
		OnboardingCompleted: true,
		Choices: domain.OnboardingChoices{
			WantsWeightLoss:    draft.WantsWeightLoss,
			WantsBibleReading:  draft.WantsBibleReading,
			WantsExtraReading:  draft.WantsExtraReading,
			BiblePlanDays:      draft.BiblePlanDays,
			ExtraReadingGenres: draft.ExtraReadingGenres,
		},
		ActiveModules: domain.ModuleFlags{},
		Points:        0,
		Level:         1,
		Badges:        []string{},
		Reading: domain.ReadingStats{
			ReadChapters: []string{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.profiles.Write(ctx, profile); err != nil {
		return StepComplete, nil, err
	}
	return StepComplete, &profile, nil
}
