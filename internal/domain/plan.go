package domain

import (
	"time"
)

// PlanExercise is one line item inside a workout plan.
type PlanExercise struct {
	Name     string `bson:"name" json:"name"`
	Sets     int    `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps     int    `bson:"reps,omitempty" json:"reps,omitempty"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
	VideoURL string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
}

// WorkoutPlan is a trainer-authored plan assigned to one student.
// Cache-only record: there is no remote durability for plans.
type WorkoutPlan struct {
	ID        string         `json:"id"`
	StudentID string         `json:"studentId"`
	TrainerID string         `json:"trainerId"`
	Title     string         `json:"title"`
	Notes     string         `json:"notes,omitempty"`
	Exercises []PlanExercise `json:"exercises"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (p WorkoutPlan) RecordID() string {
	return p.ID
}

// DietMeal is one meal entry of a diet plan.
type DietMeal struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Calories    int    `json:"calories,omitempty"`
}

// DietPlan is a trainer-authored diet assigned to one student. Cache-only.
type DietPlan struct {
	ID        string     `json:"id"`
	StudentID string     `json:"studentId"`
	TrainerID string     `json:"trainerId"`
	Title     string     `json:"title"`
	Meals     []DietMeal `json:"meals"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (p DietPlan) RecordID() string {
	return p.ID
}
