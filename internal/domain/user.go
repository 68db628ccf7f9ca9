package domain

import (
	"time"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleStudent Role = "student"
)

// User is the identity record for a Trainer or a Student.
// IDs are stable strings issued at registration and never change.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`    // Should be unique
	PasswordHash string    `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role      `bson:"role" json:"role"`
	AvatarURL    string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// --- Trainer-specific ---
	// IDs of students managed by this trainer.
	StudentIDs []string `bson:"studentIds,omitempty" json:"studentIds,omitempty"`

	// --- Student-specific ---
	// ID of the trainer managing this student, if paired.
	TrainerID *string `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
}

// RecordID satisfies store.Record.
func (u User) RecordID() string {
	return u.ID
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
