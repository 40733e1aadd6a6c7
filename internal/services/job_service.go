package services

import (
	"fmt"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/repositories"
)

type JobService struct {
	jobRepo *repositories.JobRepository
}

func NewJobService(jobRepo *repositories.JobRepository) *JobService {
	return &JobService{
		jobRepo: jobRepo,
	}
}

// CreateHarvestJob creates a harvest job plus a dependent score job, so
// scoring runs automatically once the harvest completes
func (s *JobService) CreateHarvestJob(jobRole, query string, pages int) (*models.Job, error) {
	harvestJob := models.NewJob(models.JobTypeHarvest, jobRole)
	harvestJob.SearchQuery = query
	harvestJob.SearchPages = pages
	if err := s.jobRepo.Create(harvestJob); err != nil {
		return nil, fmt.Errorf("failed to create harvest job: %w", err)
	}

	scoreJob := models.NewJob(models.JobTypeScore, jobRole)
	scoreJob.DependsOn = &harvestJob.ID
	if err := s.jobRepo.Create(scoreJob); err != nil {
		return nil, fmt.Errorf("failed to create score job: %w", err)
	}

	return harvestJob, nil
}

// CreateScoreJob creates a standalone scoring job for a role
func (s *JobService) CreateScoreJob(jobRole string) (*models.Job, error) {
	job := models.NewJob(models.JobTypeScore, jobRole)
	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create score job: %w", err)
	}
	return job, nil
}

// GetJobByID retrieves a job by ID
func (s *JobService) GetJobByID(id string) (*models.Job, error) {
	return s.jobRepo.GetByID(id)
}

// GetRecentJobs retrieves the most recently created jobs
func (s *JobService) GetRecentJobs(limit int) ([]*models.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.jobRepo.GetRecent(limit)
}
