package workers

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/repositories"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/services"
)

// WorkerManager manages multiple workers of different types
type WorkerManager struct {
	workers []Worker
	jobRepo *repositories.JobRepository
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	harvesterService   *services.HarvesterService
	candidateService   *services.CandidateService
	exportService      *services.ExportService
	commitScoreService *services.CommitScoreService
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(
	jobRepo *repositories.JobRepository,
	harvesterService *services.HarvesterService,
	candidateService *services.CandidateService,
	exportService *services.ExportService,
	commitScoreService *services.CommitScoreService,
) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:            make([]Worker, 0),
		jobRepo:            jobRepo,
		ctx:                ctx,
		cancel:             cancel,
		harvesterService:   harvesterService,
		candidateService:   candidateService,
		exportService:      exportService,
		commitScoreService: commitScoreService,
	}
}

// StartAll starts all workers based on environment configuration
func (wm *WorkerManager) StartAll() error {
	harvestWorkers := wm.getWorkerCount("HARVEST_WORKERS", 1)
	scoreWorkers := wm.getWorkerCount("SCORE_WORKERS", 1)

	log.Printf("Starting workers - Harvest: %d, Score: %d", harvestWorkers, scoreWorkers)

	for i := 0; i < harvestWorkers; i++ {
		worker := NewHarvestWorker(
			fmt.Sprintf("harvest-%d", i+1),
			wm.jobRepo,
			wm.harvesterService,
			wm.candidateService,
			wm.exportService,
		)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	for i := 0; i < scoreWorkers; i++ {
		worker := NewScoreWorker(
			fmt.Sprintf("score-%d", i+1),
			wm.jobRepo,
			wm.commitScoreService,
			wm.candidateService,
		)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	log.Printf("Started %d total workers", len(wm.workers))
	return nil
}

// StopAll gracefully stops all workers
func (wm *WorkerManager) StopAll() error {
	log.Println("Stopping all workers...")

	// Cancel the context to signal all workers to stop
	wm.cancel()

	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			log.Printf("Error stopping worker %s: %v", worker.GetWorkerID(), err)
		}
	}

	// Wait for all workers to finish
	wm.wg.Wait()

	log.Println("All workers stopped")
	return nil
}

// getWorkerCount reads worker count from environment variable with fallback
func (wm *WorkerManager) getWorkerCount(envVar string, defaultValue int) int {
	if value := os.Getenv(envVar); value != "" {
		if count, err := strconv.Atoi(value); err == nil && count > 0 {
			return count
		}
		log.Printf("Invalid value for %s, using default: %d", envVar, defaultValue)
	}
	return defaultValue
}

// startWorker starts a single worker in a goroutine
func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil {
			log.Printf("Worker %s stopped with error: %v", worker.GetWorkerID(), err)
		}
	}()
}

// GetWorkerStatus returns the status of all workers
func (wm *WorkerManager) GetWorkerStatus() map[string]bool {
	status := make(map[string]bool)
	for _, worker := range wm.workers {
		if harvestWorker, ok := worker.(*HarvestWorker); ok {
			status[worker.GetWorkerID()] = harvestWorker.IsRunning()
		} else if scoreWorker, ok := worker.(*ScoreWorker); ok {
			status[worker.GetWorkerID()] = scoreWorker.IsRunning()
		} else {
			status[worker.GetWorkerID()] = false
		}
	}
	return status
}
