package domain

import (
	"time"
)

// Module identifies a trainer-gated feature area.
type Module string

const (
	ModuleFitness   Module = "fitness"
	ModuleSpiritual Module = "spiritual"
	ModuleReading   Module = "reading"
)

// ModuleFlags are the per-student gates controlled exclusively by the
// trainer. Every flag defaults to false; onboarding choices never
// activate a module.
type ModuleFlags struct {
	Fitness   bool `bson:"fitness" json:"fitness"`
	Spiritual bool `bson:"spiritual" json:"spiritual"`
	Reading   bool `bson:"reading" json:"reading"`
}

// Set returns a copy with the named module switched. Unknown modules are
// ignored; callers validate the name first.
func (f ModuleFlags) Set(m Module, active bool) ModuleFlags {
	switch m {
	case ModuleFitness:
		f.Fitness = active
	case ModuleSpiritual:
		f.Spiritual = active
	case ModuleReading:
		f.Reading = active
	}
	return f
}

// Measurements holds body measurements collected during onboarding and
// later profile edits. Chest, body fat and muscle mass are optional.
type Measurements struct {
	Waist      float64  `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips       float64  `bson:"hips,omitempty" json:"hips,omitempty"`
	Arm        float64  `bson:"arm,omitempty" json:"arm,omitempty"`
	Leg        float64  `bson:"leg,omitempty" json:"leg,omitempty"`
	Chest      *float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	BodyFat    *float64 `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"`
	MuscleMass *float64 `bson:"muscleMass,omitempty" json:"muscleMass,omitempty"`
}

// OnboardingChoices are the three independent goals picked on the goals
// step, plus the configuration derived from them.
type OnboardingChoices struct {
	WantsWeightLoss    bool     `bson:"wantsWeightLoss" json:"wantsWeightLoss"`
	WantsBibleReading  bool     `bson:"wantsBibleReading" json:"wantsBibleReading"`
	WantsExtraReading  bool     `bson:"wantsExtraReading" json:"wantsExtraReading"`
	BiblePlanDays      int      `bson:"biblePlanDays,omitempty" json:"biblePlanDays,omitempty"`
	ExtraReadingGenres []string `bson:"extraReadingGenres,omitempty" json:"extraReadingGenres,omitempty"`
}

// ReadingStats is the gamification state driven by reading check-ins.
// TotalChaptersRead is derived and always equals len(ReadChapters).
// LastReadDate is a calendar date in "2006-01-02" form, used to cap the
// streak at one increment per day.
type ReadingStats struct {
	TotalChaptersRead int      `bson:"totalChaptersRead" json:"totalChaptersRead"`
	Streak            int      `bson:"streak" json:"streak"`
	LastReadDate      string   `bson:"lastReadDate,omitempty" json:"lastReadDate,omitempty"`
	ReadChapters      []string `bson:"readChapters" json:"readChapters"`
}

// HasChapter reports whether the chapter id is in the read set.
func (r ReadingStats) HasChapter(chapterID string) bool {
	for _, id := range r.ReadChapters {
		if id == chapterID {
			return true
		}
	}
	return false
}

// UserProfile is the one-to-one companion of a User, keyed by the user id.
// It is created only at onboarding completion and mutated by check-ins,
// trainer module toggles and profile edits.
type UserProfile struct {
	UserID string `bson:"_id" json:"userId"`

	// Demographics
	Age    int     `bson:"age" json:"age"`
	Gender string  `bson:"gender" json:"gender"`
	Height float64 `bson:"height" json:"height"`
	Weight float64 `bson:"weight" json:"weight"`

	Measurements Measurements `bson:"measurements" json:"measurements"`

	Goal       string   `bson:"goal,omitempty" json:"goal,omitempty"`
	SportTypes []string `bson:"sportTypes,omitempty" json:"sportTypes,omitempty"`

	OnboardingCompleted bool              `bson:"onboardingCompleted" json:"onboardingCompleted"`
	Choices             OnboardingChoices `bson:"choices" json:"choices"`

	ActiveModules ModuleFlags `bson:"activeModules" json:"activeModules"`

	// Gamification
	Points  int          `bson:"points" json:"points"`
	Level   int          `bson:"level" json:"level"`
	Badges  []string     `bson:"badges" json:"badges"`
	Reading ReadingStats `bson:"reading" json:"reading"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RecordID satisfies store.Record.
func (p UserProfile) RecordID() string {
	return p.UserID
}
