package api

import (
	"errors"
	"fmt"
	"net/http"

	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- DTOs ---

type AddStudentRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SetModuleRequest struct {
	Module domain.Module `json:"module" binding:"required,oneof=fitness spiritual reading"`
	Active *bool         `json:"active" binding:"required"`
}

type AssignWorkoutPlanRequest struct {
	Title     string                `json:"title" binding:"required"`
	Notes     string                `json:"notes"`
	Exercises []domain.PlanExercise `json:"exercises"`
}

type AssignDietPlanRequest struct {
	Title string            `json:"title" binding:"required"`
	Meals []domain.DietMeal `json:"meals"`
}

// --- Handler Methods ---

// AddStudent links an existing student account to the trainer's roster.
func (h *TrainerHandler) AddStudent(c *gin.Context) {
	var req AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	student, err := h.trainerService.AddStudentByEmail(c.Request.Context(), trainerID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAStudent):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case isRemoteUnavailable(err):
			abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add student.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(student))
}

// GetStudents returns the trainer's roster.
func (h *TrainerHandler) GetStudents(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	students, err := h.trainerService.Students(c.Request.Context(), trainerID)
	if err != nil {
		if isRemoteUnavailable(err) {
			abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve students.")
		return
	}

	responses := make([]UserResponse, len(students))
	for i := range students {
		responses[i] = MapUserToResponse(&students[i])
	}
	c.JSON(http.StatusOK, responses)
}

// SetModule flips one feature gate on a student's profile. This is the
// only path that activates a module.
func (h *TrainerHandler) SetModule(c *gin.Context) {
	var req SetModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	profile, err := h.trainerService.SetModuleActive(c.Request.Context(), trainerID, c.Param("studentId"), req.Module, *req.Active)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUnknownModule):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotManaged):
			abortWithError(c, http.StatusForbidden, err.Error())
		case isRemoteUnavailable(err):
			abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update module.")
		}
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// AssignWorkout creates a workout plan for a managed student.
func (h *TrainerHandler) AssignWorkout(c *gin.Context) {
	var req AssignWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	plan, err := h.trainerService.AssignWorkoutPlan(c.Request.Context(), trainerID, c.Param("studentId"), req.Title, req.Notes, req.Exercises)
	if err != nil {
		handleAssignError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// AssignDiet creates a diet plan for a managed student.
func (h *TrainerHandler) AssignDiet(c *gin.Context) {
	var req AssignDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	plan, err := h.trainerService.AssignDietPlan(c.Request.Context(), trainerID, c.Param("studentId"), req.Title, req.Meals)
	if err != nil {
		handleAssignError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetStudentWorkouts lists the workout plans assigned to a managed student.
func (h *TrainerHandler) GetStudentWorkouts(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	plans, err := h.trainerService.WorkoutPlansForStudent(c.Request.Context(), trainerID, c.Param("studentId"))
	if err != nil {
		handleAssignError(c, err)
		return
	}
	if plans == nil {
		plans = []domain.WorkoutPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GetStudentDiets lists the diet plans assigned to a managed student.
func (h *TrainerHandler) GetStudentDiets(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return
	}

	plans, err := h.trainerService.DietPlansForStudent(c.Request.Context(), trainerID, c.Param("studentId"))
	if err != nil {
		handleAssignError(c, err)
		return
	}
	if plans == nil {
		plans = []domain.DietPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

func handleAssignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyPlan):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStudentNotManaged):
		abortWithError(c, http.StatusForbidden, err.Error())
	case isRemoteUnavailable(err):
		abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to assign plan.")
	}
}
