package services

import (
	"fmt"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/repositories"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/logger"
)

type CandidateService struct {
	candidateRepo *repositories.CandidateRepository
}

func NewCandidateService(candidateRepo *repositories.CandidateRepository) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
	}
}

// SaveHarvested upserts harvested records as candidates for a job role and
// returns how many were stored
func (s *CandidateService) SaveHarvested(records []*models.HarvestRecord, jobRole string) (int, error) {
	saved := 0
	for _, record := range records {
		candidate := models.NewCandidate(record, jobRole)
		if err := s.candidateRepo.Upsert(candidate); err != nil {
			logger.WithError(err).WithField("username", record.Username).Error("Failed to save candidate")
			continue
		}
		saved++
	}
	return saved, nil
}

// GetCandidateByID retrieves a candidate by ID
func (s *CandidateService) GetCandidateByID(id string) (*models.Candidate, error) {
	return s.candidateRepo.GetByID(id)
}

// ListTopCandidates returns the top candidates for a role sorted by the
// given key, highest first
func (s *CandidateService) ListTopCandidates(jobRole, sortBy string, limit int) ([]*models.Candidate, error) {
	column, ok := repositories.SortColumns[sortBy]
	if !ok {
		return nil, fmt.Errorf("unknown sort key %q", sortBy)
	}
	if limit <= 0 {
		limit = 20
	}

	return s.candidateRepo.ListByRole(jobRole, column, limit)
}

// GetAllByRole returns every candidate for a role
func (s *CandidateService) GetAllByRole(jobRole string) ([]*models.Candidate, error) {
	return s.candidateRepo.GetAllByRole(jobRole)
}

// UpdateCommitScore stores the commit relevance score for a candidate
func (s *CandidateService) UpdateCommitScore(id string, score float64) error {
	return s.candidateRepo.UpdateCommitScore(id, score)
}

// UpdateStatus moves a candidate to a new funnel state
func (s *CandidateService) UpdateStatus(id string, status models.CandidateStatus) error {
	return s.candidateRepo.UpdateStatus(id, status)
}
