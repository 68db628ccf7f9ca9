package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arete/coaching-app/internal/api"
	"arete/coaching-app/internal/cache"
	"arete/coaching-app/internal/config"
	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/poll"
	"arete/coaching-app/internal/service"
	"arete/coaching-app/internal/storage"
	"arete/coaching-app/internal/store"
	storemongo "arete/coaching-app/internal/store/mongo"
	"arete/coaching-app/internal/suggest"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.WithField("service", "coaching-app")
	log.Info("starting server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	// --- Database Connection ---
	dbClient, err := storemongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		if err := storemongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := storemongo.EnsureUserIndexes(ctx, appDB.Collection(store.CollectionUsers)); err != nil {
			log.WithError(err).Warn("failed to create user indexes")
		}
	}()

	// --- Local cache and stores ---
	// The cache is constructed here and injected; durable collections
	// mirror the remote store, everything else lives only in the cache.
	localCache := cache.New()

	users := store.NewDurable(store.CollectionUsers,
		storemongo.NewRemoteCollection[domain.User](appDB, store.CollectionUsers), localCache)
	profiles := store.NewDurable(store.CollectionProfiles,
		storemongo.NewRemoteCollection[domain.UserProfile](appDB, store.CollectionProfiles), localCache)

	workouts := store.NewLocal[domain.WorkoutPlan](store.CollectionWorkoutPlans, localCache)
	diets := store.NewLocal[domain.DietPlan](store.CollectionDietPlans, localCache)
	progress := store.NewLocal[domain.ProgressLog](store.CollectionProgressLogs, localCache)
	activity := store.NewLocal[domain.ActivityLog](store.CollectionActivityLogs, localCache)
	messages := store.NewLocal[domain.ChatMessage](store.CollectionMessages, localCache)
	events := store.NewLocal[domain.CalendarEvent](store.CollectionEvents, localCache)
	reviews := store.NewLocal[domain.BookReview](store.CollectionBookReviews, localCache)
	wishlist := store.NewLocal[domain.WishlistBook](store.CollectionWishlist, localCache)
	posts := store.NewLocal[domain.CommunityPost](store.CollectionCommunityPosts, localCache)

	// --- File storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize S3 storage")
	}

	// --- Suggestion collaborator ---
	var suggestions suggest.Service
	if cfg.Suggest.Endpoint != "" {
		suggestions = suggest.NewHTTPService(cfg.Suggest.Endpoint, cfg.Suggest.Timeout)
	} else {
		suggestions = suggest.NewDisabled()
		log.Info("suggestion service disabled (no endpoint configured)")
	}

	// --- Services ---
	authService := service.NewAuthService(users, cfg.JWT.Secret, cfg.JWT.Expiration)
	onboardingService := service.NewOnboardingService(profiles)
	readingService := service.NewReadingService(profiles)
	leaderboardService := service.NewLeaderboardService(profiles, users)
	trainerService := service.NewTrainerService(users, profiles, workouts, diets)
	studentService := service.NewStudentService(
		users, profiles,
		messages, progress, activity, events, reviews, wishlist, posts,
		fileStorage, suggestions,
	)

	// --- Leaderboard refresh poll ---
	pollCtx, pollCancel := context.WithCancel(context.Background())
	defer pollCancel()
	go poll.New("leaderboard", cfg.Leaderboard.PollInterval).Run(pollCtx, leaderboardService.Refresh)

	// --- HTTP server ---
	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, onboardingService, readingService, leaderboardService, trainerService, studentService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("address", cfg.Server.Address).Info("server listening")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	pollCancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("forced shutdown")
	}

	log.Info("server exiting")
}
