package api

import (
	"net/http"

	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	onboardingService service.OnboardingService,
	readingService service.ReadingService,
	leaderboardService service.LeaderboardService,
	trainerService service.TrainerService,
	studentService service.StudentService,
) {
	authHandler := NewAuthHandler(authService)
	onboardingHandler := NewOnboardingHandler(onboardingService)
	readingHandler := NewReadingHandler(readingService)
	leaderboardHandler := NewLeaderboardHandler(leaderboardService)
	trainerHandler := NewTrainerHandler(trainerService)
	studentHandler := NewStudentHandler(studentService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// Onboarding wizard (students)
		protected.POST("/onboarding/advance", RoleMiddleware(domain.RoleStudent), onboardingHandler.Advance)

		// Reading check-ins
		protected.POST("/reading/checkins", readingHandler.ToggleChapter)

		// Leaderboard (any authenticated user)
		protected.GET("/leaderboard", leaderboardHandler.Get)

		// Messaging (trainer and student)
		protected.POST("/messages", studentHandler.SendMessage)
		protected.GET("/messages/:peerId", studentHandler.GetConversation)

		// --- Trainer Specific Routes ---
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerGroup.POST("/students", trainerHandler.AddStudent)
			trainerGroup.GET("/students", trainerHandler.GetStudents)

			// Module gate: the only path that activates a student module.
			trainerGroup.PUT("/students/:studentId/modules", trainerHandler.SetModule)

			trainerGroup.POST("/students/:studentId/workout-plans", trainerHandler.AssignWorkout)
			trainerGroup.GET("/students/:studentId/workout-plans", trainerHandler.GetStudentWorkouts)
			trainerGroup.POST("/students/:studentId/diet-plans", trainerHandler.AssignDiet)
			trainerGroup.GET("/students/:studentId/diet-plans", trainerHandler.GetStudentDiets)
		}

		// --- Student Specific Routes ---
		studentGroup := protected.Group("/student")
		studentGroup.Use(RoleMiddleware(domain.RoleStudent))
		{
			studentGroup.POST("/progress", studentHandler.LogProgress)
			studentGroup.GET("/progress", studentHandler.GetProgress)
			studentGroup.POST("/activities", studentHandler.LogActivity)

			studentGroup.POST("/events", studentHandler.AddEvent)
			studentGroup.GET("/events", studentHandler.GetEvents)

			studentGroup.POST("/reviews", studentHandler.AddReview)
			studentGroup.GET("/reviews", studentHandler.GetReviewFeed)
			studentGroup.POST("/wishlist", studentHandler.AddWishlistBook)
			studentGroup.GET("/wishlist", studentHandler.GetWishlist)
			studentGroup.POST("/community", studentHandler.AddPost)
			studentGroup.GET("/community", studentHandler.GetCommunityFeed)

			studentGroup.POST("/avatar/upload-url", studentHandler.RequestAvatarUpload)
			studentGroup.POST("/avatar/confirm", studentHandler.ConfirmAvatar)
			studentGroup.GET("/avatar", studentHandler.GetAvatarURL)

			studentGroup.POST("/suggestions/workout", studentHandler.SuggestWorkout)
			studentGroup.GET("/suggestions/progress-summary", studentHandler.SummarizeProgress)
		}
	}
}
