package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/repositories"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/services"
)

type ScoreWorker struct {
	*BaseWorker
	jobRepo            *repositories.JobRepository
	commitScoreService *services.CommitScoreService
	candidateService   *services.CandidateService
}

func NewScoreWorker(
	workerID string,
	jobRepo *repositories.JobRepository,
	commitScoreService *services.CommitScoreService,
	candidateService *services.CandidateService,
) *ScoreWorker {
	return &ScoreWorker{
		BaseWorker:         NewBaseWorker(workerID, models.JobTypeScore),
		jobRepo:            jobRepo,
		commitScoreService: commitScoreService,
		candidateService:   candidateService,
	}
}

// Start begins the score worker process
func (w *ScoreWorker) Start(ctx context.Context) error {
	w.Running = true
	log.Printf("Score worker %s started", w.WorkerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Score worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			log.Printf("Score worker %s stopping", w.WorkerID)
			return nil
		default:
			job, err := w.jobRepo.GetNextPendingJob(models.JobTypeScore)
			if err != nil {
				log.Printf("Score worker %s error getting job: %v", w.WorkerID, err)
				time.Sleep(5 * time.Second)
				continue
			}

			if job == nil {
				// No jobs available, sleep and try again
				time.Sleep(10 * time.Second)
				continue
			}

			w.processScoreJob(ctx, job)
		}
	}
}

// processScoreJob handles a single score job
func (w *ScoreWorker) processScoreJob(ctx context.Context, job *models.Job) {
	log.Printf("Score worker %s processing job %s", w.WorkerID, job.ID)

	job.WorkerID = &w.WorkerID
	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("Score worker %s error updating job %s: %v", w.WorkerID, job.ID, err)
		return
	}

	if err := w.ProcessJob(ctx, job); err != nil {
		log.Printf("Score worker %s error processing job %s: %v", w.WorkerID, job.ID, err)
		job.SetError(err.Error())
		job.MarkFailed()
		if err := w.jobRepo.Update(job); err != nil {
			log.Printf("Score worker %s error marking job %s as failed: %v", w.WorkerID, job.ID, err)
		}
		return
	}

	job.MarkCompleted()
	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("Score worker %s error marking job %s as completed: %v", w.WorkerID, job.ID, err)
		return
	}

	log.Printf("Score worker %s completed job %s", w.WorkerID, job.ID)
}

func (w *ScoreWorker) ProcessJob(ctx context.Context, job *models.Job) error {
	candidates, err := w.candidateService.GetAllByRole(job.JobRole)
	if err != nil {
		return fmt.Errorf("failed to load candidates for role %q: %w", job.JobRole, err)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no candidates to score for role %q", job.JobRole)
	}

	scored := 0
	for _, candidate := range candidates {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		score, err := w.commitScoreService.ScoreCandidate(candidate.Username, job.JobRole)
		if err != nil {
			// Candidates without a commit corpus keep their previous score.
			log.Printf("Score worker %s skipping %s: %v", w.WorkerID, candidate.Username, err)
			continue
		}

		if err := w.candidateService.UpdateCommitScore(candidate.ID, score); err != nil {
			log.Printf("Score worker %s error saving score for %s: %v", w.WorkerID, candidate.Username, err)
			continue
		}
		scored++
	}

	log.Printf("Score worker %s scored %d/%d candidates for role %q", w.WorkerID, scored, len(candidates), job.JobRole)
	return nil
}
