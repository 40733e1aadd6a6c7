package models

import (
	"time"

	"github.com/google/uuid"
)

// Shortlist records that a recruiter selected a candidate for the coding round
type Shortlist struct {
	ID          string     `json:"id" db:"id"`
	CandidateID string     `json:"candidate_id" db:"candidate_id"`
	JobRole     string     `json:"job_role" db:"job_role"`
	EmailSentAt *time.Time `json:"email_sent_at" db:"email_sent_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// NewShortlist creates a new shortlist entry for a candidate
func NewShortlist(candidateID, jobRole string) *Shortlist {
	return &Shortlist{
		ID:          uuid.New().String(),
		CandidateID: candidateID,
		JobRole:     jobRole,
		CreatedAt:   time.Now(),
	}
}

// MarkEmailSent records when the shortlist email went out
func (s *Shortlist) MarkEmailSent() {
	now := time.Now()
	s.EmailSentAt = &now
}
