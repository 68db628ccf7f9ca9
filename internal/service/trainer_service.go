package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/store"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrTrainerNotFound   = errors.New("trainer not found")
	ErrNotAStudent       = errors.New("user is not a student")
	ErrUnknownModule     = errors.New("unknown module")
	ErrProfileNotFound   = errors.New("student has not completed onboarding")
	ErrEmptyPlan         = errors.New("plan requires a title")
	ErrStudentNotManaged = errors.New("student is not managed by this trainer")
)

type TrainerService interface {
	// Roster management
	AddStudentByEmail(ctx context.Context, trainerID, studentEmail string) (*domain.User, error)
	Students(ctx context.Context, trainerID string) ([]domain.User, error)

	// Module gate: the only way a student's feature areas are activated.
	// Restricted, like every per-student operation, to the managing trainer.
	SetModuleActive(ctx context.Context, trainerID, studentID string, module domain.Module, active bool) (*domain.UserProfile, error)

	// Plan assignment (cache-only records)
	AssignWorkoutPlan(ctx context.Context, trainerID, studentID, title, notes string, exercises []domain.PlanExercise) (*domain.WorkoutPlan, error)
	AssignDietPlan(ctx context.Context, trainerID, studentID, title string, meals []domain.DietMeal) (*domain.DietPlan, error)
	WorkoutPlansForStudent(ctx context.Context, trainerID, studentID string) ([]domain.WorkoutPlan, error)
	DietPlansForStudent(ctx context.Context, trainerID, studentID string) ([]domain.DietPlan, error)
}

type trainerService struct {
	users    *store.Durable[domain.User]
	profiles *store.Durable[domain.UserProfile]
	workouts *store.Local[domain.WorkoutPlan]
	diets    *store.Local[domain.DietPlan]
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	users *store.Durable[domain.User],
	profiles *store.Durable[domain.UserProfile],
	workouts *store.Local[domain.WorkoutPlan],
	diets *store.Local[domain.DietPlan],
) TrainerService {
	return &trainerService{
		users:    users,
		profiles: profiles,
		workouts: workouts,
		diets:    diets,
	}
}

// AddStudentByEmail links an existing student account to the trainer's
// roster. Both user records are rewritten whole (last-writer-wins).
func (s *trainerService) AddStudentByEmail(ctx context.Context, trainerID, studentEmail string) (*domain.User, error) {
	trainer, err := s.users.Read(ctx, trainerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	all, err := s.users.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	var student *domain.User
	for i := range all {
		if strings.EqualFold(all[i].Email, studentEmail) {
			student = &all[i]
			break
		}
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	if !student.IsStudent() {
		return nil, ErrNotAStudent
	}

	now := time.Now().UTC()

	linked := false
	for _, id := range trainer.StudentIDs {
		if id == student.ID {
			linked = true
			break
		}
	}
	if !linked {
		trainer.StudentIDs = append(trainer.StudentIDs, student.ID)
		trainer.UpdatedAt = now
		if err := s.users.Write(ctx, trainer); err != nil {
			return nil, err
		}
	}

	student.TrainerID = &trainer.ID
	student.UpdatedAt = now
	if err := s.users.Write(ctx, *student); err != nil {
		return nil, err
	}

	student.PasswordHash = ""
	return student, nil
}

// Students returns the trainer's roster.
func (s *trainerService) Students(ctx context.Context, trainerID string) ([]domain.User, error) {
	trainer, err := s.users.Read(ctx, trainerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if len(trainer.StudentIDs) == 0 {
		return []domain.User{}, nil
	}

	wanted := make(map[string]bool, len(trainer.StudentIDs))
	for _, id := range trainer.StudentIDs {
		wanted[id] = true
	}

	all, err := s.users.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	students := make([]domain.User, 0, len(wanted))
	for _, u := range all {
		if wanted[u.ID] {
			u.PasswordHash = ""
			students = append(students, u)
		}
	}
	return students, nil
}

// SetModuleActive flips one feature gate on the student's profile. The
// set is idempotent: activating an already-active module rewrites the
// record with the same flags.
func (s *trainerService) SetModuleActive(ctx context.Context, trainerID, studentID string, module domain.Module, active bool) (*domain.UserProfile, error) {
	switch module {
	case domain.ModuleFitness, domain.ModuleSpiritual, domain.ModuleReading:
	default:
		return nil, ErrUnknownModule
	}
	if err := s.checkManages(ctx, trainerID, studentID); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Read(ctx, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	profile.ActiveModules = profile.ActiveModules.Set(module, active)
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Write(ctx, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AssignWorkoutPlan creates a cache-only workout plan for the student.
func (s *trainerService) AssignWorkoutPlan(ctx context.Context, trainerID, studentID, title, notes string, exercises []domain.PlanExercise) (*domain.WorkoutPlan, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyPlan
	}
	if err := s.checkManages(ctx, trainerID, studentID); err != nil {
		return nil, err
	}

	plan := domain.WorkoutPlan{
		ID:        uuid.NewString(),
		StudentID: studentID,
		TrainerID: trainerID,
		Title:     title,
		Notes:     notes,
		Exercises: exercises,
		CreatedAt: time.Now().UTC(),
	}
	s.workouts.Append(plan)
	return &plan, nil
}

// AssignDietPlan creates a cache-only diet plan for the student.
func (s *trainerService) AssignDietPlan(ctx context.Context, trainerID, studentID, title string, meals []domain.DietMeal) (*domain.DietPlan, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyPlan
	}
	if err := s.checkManages(ctx, trainerID, studentID); err != nil {
		return nil, err
	}

	plan := domain.DietPlan{
		ID:        uuid.NewString(),
		StudentID: studentID,
		TrainerID: trainerID,
		Title:     title,
		Meals:     meals,
		CreatedAt: time.Now().UTC(),
	}
	s.diets.Append(plan)
	return &plan, nil
}

func (s *trainerService) WorkoutPlansForStudent(ctx context.Context, trainerID, studentID string) ([]domain.WorkoutPlan, error) {
	if err := s.checkManages(ctx, trainerID, studentID); err != nil {
		return nil, err
	}
	return s.workouts.Filter(func(p domain.WorkoutPlan) bool {
		return p.StudentID == studentID
	}), nil
}

func (s *trainerService) DietPlansForStudent(ctx context.Context, trainerID, studentID string) ([]domain.DietPlan, error) {
	if err := s.checkManages(ctx, trainerID, studentID); err != nil {
		return nil, err
	}
	return s.diets.Filter(func(p domain.DietPlan) bool {
		return p.StudentID == studentID
	}), nil
}

func (s *trainerService) checkManages(ctx context.Context, trainerID, studentID string) error {
	trainer, err := s.users.Read(ctx, trainerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}
	for _, id := range trainer.StudentIDs {
		if id == studentID {
			return nil
		}
	}
	return ErrStudentNotManaged
}
