package services

import (
	"fmt"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
	"github.com/nimish0503/Hush-Hush-Recruiter/internal/repositories"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/logger"
)

type ShortlistService struct {
	candidateRepo *repositories.CandidateRepository
	shortlistRepo *repositories.ShortlistRepository
	emailService  *EmailService
}

func NewShortlistService(
	candidateRepo *repositories.CandidateRepository,
	shortlistRepo *repositories.ShortlistRepository,
	emailService *EmailService,
) *ShortlistService {
	return &ShortlistService{
		candidateRepo: candidateRepo,
		shortlistRepo: shortlistRepo,
		emailService:  emailService,
	}
}

// ShortlistCandidate selects a candidate for the coding round and sends the
// shortlist email. Shortlisting is idempotent per candidate.
func (s *ShortlistService) ShortlistCandidate(candidateID string) (*models.Shortlist, error) {
	candidate, err := s.candidateRepo.GetByID(candidateID)
	if err != nil {
		return nil, fmt.Errorf("candidate not found: %w", err)
	}

	exists, err := s.shortlistRepo.Exists(candidateID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("candidate %s is already shortlisted", candidate.Username)
	}

	entry := models.NewShortlist(candidateID, candidate.JobRole)

	if err := s.emailService.SendShortlistEmail(candidate); err != nil {
		// The selection still stands; the recruiter can resend manually.
		logger.WithError(err).WithField("username", candidate.Username).Error("Failed to send shortlist email")
	} else {
		entry.MarkEmailSent()
	}

	if err := s.shortlistRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to save shortlist entry: %w", err)
	}

	if err := s.candidateRepo.UpdateStatus(candidateID, models.CandidateStatusShortlisted); err != nil {
		return nil, err
	}

	return entry, nil
}

// RejectCandidate marks a candidate rejected and sends the rejection email
func (s *ShortlistService) RejectCandidate(candidateID string) error {
	candidate, err := s.candidateRepo.GetByID(candidateID)
	if err != nil {
		return fmt.Errorf("candidate not found: %w", err)
	}

	if err := s.emailService.SendRejectionEmail(candidate); err != nil {
		logger.WithError(err).WithField("username", candidate.Username).Error("Failed to send rejection email")
	}

	return s.candidateRepo.UpdateStatus(candidateID, models.CandidateStatusRejected)
}

// ListShortlisted returns the shortlist entries for a role
func (s *ShortlistService) ListShortlisted(jobRole string) ([]*models.Shortlist, error) {
	return s.shortlistRepo.ListByRole(jobRole)
}
