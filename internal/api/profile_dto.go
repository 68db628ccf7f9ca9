package api

import (
	"time"

	"arete/coaching-app/internal/domain"
)

// ProfileResponse is the DTO for returning a user profile.
type ProfileResponse struct {
	UserID              string                   `json:"userId"`
	Age                 int                      `json:"age"`
	Gender              string                   `json:"gender"`
	Height              float64                  `json:"height"`
	Weight              float64                  `json:"weight"`
	Measurements        domain.Measurements      `json:"measurements"`
	Goal                string                   `json:"goal,omitempty"`
	SportTypes          []string                 `json:"sportTypes,omitempty"`
	OnboardingCompleted bool                     `json:"onboardingCompleted"`
	Choices             domain.OnboardingChoices `json:"choices"`
	ActiveModules       domain.ModuleFlags       `json:"activeModules"`
	Points              int                      `json:"points"`
	Level               int                      `json:"level"`
	Badges              []string                 `json:"badges"`
	Reading             domain.ReadingStats      `json:"reading"`
	UpdatedAt           time.Time                `json:"updatedAt"`
}

// MapProfileToResponse converts a domain.UserProfile to its DTO.
func MapProfileToResponse(p *domain.UserProfile) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		UserID:              p.UserID,
		Age:                 p.Age,
		Gender:              p.Gender,
		Height:              p.Height,
		Weight:              p.Weight,
		Measurements:        p.Measurements,
		Goal:                p.Goal,
		SportTypes:          p.SportTypes,
		OnboardingCompleted: p.OnboardingCompleted,
		Choices:             p.Choices,
		ActiveModules:       p.ActiveModules,
		Points:              p.Points,
		Level:               p.Level,
		Badges:              p.Badges,
		Reading:             p.Reading,
		UpdatedAt:           p.UpdatedAt,
	}
}
