package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/handlers"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/middleware"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/repositories"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/services"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/workers"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/config"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/database"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init()
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	candidateRepo := repositories.NewCandidateRepository(database.DB)
	jobRepo := repositories.NewJobRepository(database.DB)
	shortlistRepo := repositories.NewShortlistRepository(database.DB)

	ring, err := services.NewTokenRing(cfg.GitHub.Tokens)
	if err != nil {
		log.Fatalf("Failed to initialize token ring: %v", err)
	}
	apiService := services.NewGitHubAPIService(ring, cfg.GitHub.BaseURL)
	harvesterService := services.NewHarvesterService(apiService)
	exportService := services.NewExportService(cfg.Harvest.OutputDir)
	commitScoreService := services.NewCommitScoreService(cfg.Harvest.CorpusDir)
	candidateService := services.NewCandidateService(candidateRepo)
	jobService := services.NewJobService(jobRepo)

	emailService, err := services.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	shortlistService := services.NewShortlistService(candidateRepo, shortlistRepo, emailService)

	// Initialize worker manager
	workerManager := workers.NewWorkerManager(
		jobRepo, harvesterService, candidateService, exportService, commitScoreService,
	)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router, cfg, candidateService, shortlistService, jobService, workerManager)

	// Start workers
	if err := workerManager.StartAll(); err != nil {
		log.Fatalf("Failed to start workers: %v", err)
	}
	defer workerManager.StopAll()

	// Scheduled harvests
	scheduler := startScheduler(cfg, jobService)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	// Setup server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	candidateService *services.CandidateService,
	shortlistService *services.ShortlistService,
	jobService *services.JobService,
	workerManager *workers.WorkerManager,
) {
	// Initialize handlers
	candidateHandler := handlers.NewCandidateHandler(candidateService, shortlistService)
	harvestHandler := handlers.NewHarvestHandler(jobService, cfg)
	healthHandler := handlers.NewHealthHandler(workerManager)

	api := router.Group("/api")
	{
		api.GET("/candidates", candidateHandler.ListCandidates)
		api.GET("/candidates/:id", candidateHandler.GetCandidate)
		api.POST("/candidates/:id/shortlist", candidateHandler.ShortlistCandidate)
		api.POST("/candidates/:id/reject", candidateHandler.RejectCandidate)
		api.GET("/shortlists", candidateHandler.ListShortlisted)

		api.POST("/harvests", harvestHandler.CreateHarvest)
		api.GET("/jobs", harvestHandler.ListJobs)
		api.GET("/jobs/:id", harvestHandler.GetJob)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.Health)
}

// startScheduler queues a harvest on the configured cron schedule.
// Returns nil when no schedule is configured.
func startScheduler(cfg *config.Config, jobService *services.JobService) *cron.Cron {
	if cfg.Harvest.CronSchedule == "" {
		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.Harvest.CronSchedule, func() {
		role := services.NormalizeJobRole(cfg.Harvest.SearchQuery)
		job, err := jobService.CreateHarvestJob(role, cfg.Harvest.SearchQuery, cfg.Harvest.SearchPages)
		if err != nil {
			logger.WithError(err).Error("Scheduled harvest failed to queue")
			return
		}
		logger.WithField("job_id", job.ID).Info("Scheduled harvest queued")
	})
	if err != nil {
		log.Fatalf("Invalid HARVEST_CRON schedule %q: %v", cfg.Harvest.CronSchedule, err)
	}

	scheduler.Start()
	log.Printf("Harvest scheduler started with schedule %q", cfg.Harvest.CronSchedule)
	return scheduler
}
