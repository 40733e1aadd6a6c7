package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/repositories"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/services"
)

type HarvestWorker struct {
	*BaseWorker
	jobRepo          *repositories.JobRepository
	harvesterService *services.HarvesterService
	candidateService *services.CandidateService
	exportService    *services.ExportService
}

func NewHarvestWorker(
	workerID string,
	jobRepo *repositories.JobRepository,
	harvesterService *services.HarvesterService,
	candidateService *services.CandidateService,
	exportService *services.ExportService,
) *HarvestWorker {
	return &HarvestWorker{
		BaseWorker:       NewBaseWorker(workerID, models.JobTypeHarvest),
		jobRepo:          jobRepo,
		harvesterService: harvesterService,
		candidateService: candidateService,
		exportService:    exportService,
	}
}

// Start begins the harvest worker process
func (w *HarvestWorker) Start(ctx context.Context) error {
	w.Running = true
	log.Printf("Harvest worker %s started", w.WorkerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Harvest worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			log.Printf("Harvest worker %s stopping", w.WorkerID)
			return nil
		default:
			job, err := w.jobRepo.GetNextPendingJob(models.JobTypeHarvest)
			if err != nil {
				log.Printf("Harvest worker %s error getting job: %v", w.WorkerID, err)
				time.Sleep(5 * time.Second)
				continue
			}

			if job == nil {
				// No jobs available, sleep and try again
				time.Sleep(10 * time.Second)
				continue
			}

			w.processHarvestJob(ctx, job)
		}
	}
}

// processHarvestJob handles a single harvest job
func (w *HarvestWorker) processHarvestJob(ctx context.Context, job *models.Job) {
	log.Printf("Harvest worker %s processing job %s", w.WorkerID, job.ID)

	job.WorkerID = &w.WorkerID
	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("Harvest worker %s error updating job %s: %v", w.WorkerID, job.ID, err)
		return
	}

	if err := w.ProcessJob(ctx, job); err != nil {
		log.Printf("Harvest worker %s error processing job %s: %v", w.WorkerID, job.ID, err)
		job.SetError(err.Error())
		job.MarkFailed()
		if err := w.jobRepo.Update(job); err != nil {
			log.Printf("Harvest worker %s error marking job %s as failed: %v", w.WorkerID, job.ID, err)
		}
		return
	}

	job.MarkCompleted()
	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("Harvest worker %s error marking job %s as completed: %v", w.WorkerID, job.ID, err)
		return
	}

	log.Printf("Harvest worker %s completed job %s", w.WorkerID, job.ID)
}

func (w *HarvestWorker) ProcessJob(ctx context.Context, job *models.Job) error {
	opts := services.HarvestOptions{
		Query:   job.SearchQuery,
		Sort:    "repositories",
		Pages:   job.SearchPages,
		JobRole: job.JobRole,
	}

	records, harvestErr := w.harvesterService.Run(ctx, opts)
	if harvestErr != nil && !errors.Is(harvestErr, services.ErrTokensExhausted) {
		return fmt.Errorf("harvest failed: %w", harvestErr)
	}
	if errors.Is(harvestErr, services.ErrTokensExhausted) {
		log.Printf("Harvest worker %s: tokens exhausted, keeping %d partial records", w.WorkerID, len(records))
	}

	if len(records) == 0 {
		return fmt.Errorf("harvest produced no candidates for query %q", job.SearchQuery)
	}

	saved, err := w.candidateService.SaveHarvested(records, job.JobRole)
	if err != nil {
		return fmt.Errorf("failed to save candidates: %w", err)
	}
	log.Printf("Harvest worker %s saved %d/%d candidates", w.WorkerID, saved, len(records))

	base := fmt.Sprintf("software_engineers_%s", time.Now().Format("2006-01-02"))
	if _, err := w.exportService.WriteCSV(records, base+".csv"); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	if _, err := w.exportService.WriteXLSX(records, base+".xlsx"); err != nil {
		return fmt.Errorf("failed to write XLSX export: %w", err)
	}

	// Partial harvests keep their data but the job is still marked failed
	// so the cutoff is visible to the recruiter.
	return harvestErr
}
