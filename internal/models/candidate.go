package models

import (
	"time"

	"github.com/google/uuid"
)

// CandidateStatus represents where a candidate is in the recruiting funnel
type CandidateStatus string

const (
	CandidateStatusHarvested   CandidateStatus = "harvested"
	CandidateStatusShortlisted CandidateStatus = "shortlisted"
	CandidateStatusRejected    CandidateStatus = "rejected"
)

// HarvestRecord is the flattened result of one fully harvested GitHub user:
// profile details, repository metric totals and recent-activity counts.
// It is built only when every upstream fetch for the user succeeded and is
// never mutated afterwards.
type HarvestRecord struct {
	Username             string  `json:"username"`
	Email                string  `json:"email"`
	UserURL              string  `json:"user_url"`
	AvatarURL            string  `json:"avatar_url"`
	PublicRepos          int     `json:"public_repos"`
	Followers            int     `json:"followers"`
	TotalStars           int     `json:"total_stars"`
	TotalForks           int     `json:"total_forks"`
	TotalPRsMerged       int     `json:"total_pr_merged"`
	TotalIssuesOpened    int     `json:"total_issues_opened"`
	TotalIssuesClosed    int     `json:"total_issues_closed"`
	TotalCommitsLastYear int     `json:"total_commits_last_year"`
	TotalCommitsAllTime  int     `json:"total_commits_all_time"`
	AvgCommitsPerMonth   float64 `json:"avg_commits_per_month"`
	AvgIssueCloseTime    float64 `json:"avg_issue_close_time"`
	ContributedRepos     int     `json:"contributed_repos"`
	CodeReviewsCount     int     `json:"code_reviews_count"`
}

// RepositoryMetrics accumulates totals across all repositories owned by one user
type RepositoryMetrics struct {
	TotalStars           int
	TotalForks           int
	TotalPRsMerged       int
	TotalIssuesOpened    int
	TotalIssuesClosed    int
	TotalCommitsLastYear int
	TotalCommitsAllTime  int
	AvgCommitsPerMonth   float64
	AvgIssueCloseTime    float64

	// Accumulators for the close-latency average
	IssueCloseDays      int
	IssuesWithCloseTime int
}

// Finalize computes the derived averages. Both averages are zero when their
// denominator is zero.
func (m *RepositoryMetrics) Finalize() {
	if m.TotalCommitsLastYear > 0 {
		m.AvgCommitsPerMonth = float64(m.TotalCommitsLastYear) / 12
	} else {
		m.AvgCommitsPerMonth = 0
	}

	if m.IssuesWithCloseTime > 0 {
		m.AvgIssueCloseTime = float64(m.IssueCloseDays) / float64(m.IssuesWithCloseTime)
	} else {
		m.AvgIssueCloseTime = 0
	}
}

// ContributionSummary holds counts derived from the user's recent public
// event feed. The feed is platform-limited in depth, so both counts are
// lower bounds rather than a full history.
type ContributionSummary struct {
	ContributedRepos int
	CodeReviews      int
}

// Candidate is a harvested GitHub user persisted for the recruiter dashboard
type Candidate struct {
	ID                   string          `json:"id" db:"id"`
	Username             string          `json:"username" db:"username"`
	Email                string          `json:"email" db:"email"`
	UserURL              string          `json:"user_url" db:"user_url"`
	AvatarURL            string          `json:"avatar_url" db:"avatar_url"`
	JobRole              string          `json:"job_role" db:"job_role"`
	PublicRepos          int             `json:"public_repos" db:"public_repos"`
	Followers            int             `json:"followers" db:"followers"`
	TotalStars           int             `json:"total_stars" db:"total_stars"`
	TotalForks           int             `json:"total_forks" db:"total_forks"`
	TotalPRsMerged       int             `json:"total_pr_merged" db:"total_pr_merged"`
	TotalIssuesOpened    int             `json:"total_issues_opened" db:"total_issues_opened"`
	TotalIssuesClosed    int             `json:"total_issues_closed" db:"total_issues_closed"`
	TotalCommitsLastYear int             `json:"total_commits_last_year" db:"total_commits_last_year"`
	TotalCommitsAllTime  int             `json:"total_commits_all_time" db:"total_commits_all_time"`
	AvgCommitsPerMonth   float64         `json:"avg_commits_per_month" db:"avg_commits_per_month"`
	AvgIssueCloseTime    float64         `json:"avg_issue_close_time" db:"avg_issue_close_time"`
	ContributedRepos     int             `json:"contributed_repos" db:"contributed_repos"`
	CodeReviewsCount     int             `json:"code_reviews_count" db:"code_reviews_count"`
	CommitScore          float64         `json:"commit_score" db:"commit_score"`
	Status               CandidateStatus `json:"status" db:"status"`
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at" db:"updated_at"`
}

// NewCandidate creates a Candidate from a harvest record for the given job role
func NewCandidate(record *HarvestRecord, jobRole string) *Candidate {
	now := time.Now()
	return &Candidate{
		ID:                   uuid.New().String(),
		Username:             record.Username,
		Email:                record.Email,
		UserURL:              record.UserURL,
		AvatarURL:            record.AvatarURL,
		JobRole:              jobRole,
		PublicRepos:          record.PublicRepos,
		Followers:            record.Followers,
		TotalStars:           record.TotalStars,
		TotalForks:           record.TotalForks,
		TotalPRsMerged:       record.TotalPRsMerged,
		TotalIssuesOpened:    record.TotalIssuesOpened,
		TotalIssuesClosed:    record.TotalIssuesClosed,
		TotalCommitsLastYear: record.TotalCommitsLastYear,
		TotalCommitsAllTime:  record.TotalCommitsAllTime,
		AvgCommitsPerMonth:   record.AvgCommitsPerMonth,
		AvgIssueCloseTime:    record.AvgIssueCloseTime,
		ContributedRepos:     record.ContributedRepos,
		CodeReviewsCount:     record.CodeReviewsCount,
		Status:               CandidateStatusHarvested,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Record returns the harvest-record view of the candidate, used for exports
func (c *Candidate) Record() *HarvestRecord {
	return &HarvestRecord{
		Username:             c.Username,
		Email:                c.Email,
		UserURL:              c.UserURL,
		AvatarURL:            c.AvatarURL,
		PublicRepos:          c.PublicRepos,
		Followers:            c.Followers,
		TotalStars:           c.TotalStars,
		TotalForks:           c.TotalForks,
		TotalPRsMerged:       c.TotalPRsMerged,
		TotalIssuesOpened:    c.TotalIssuesOpened,
		TotalIssuesClosed:    c.TotalIssuesClosed,
		TotalCommitsLastYear: c.TotalCommitsLastYear,
		TotalCommitsAllTime:  c.TotalCommitsAllTime,
		AvgCommitsPerMonth:   c.AvgCommitsPerMonth,
		AvgIssueCloseTime:    c.AvgIssueCloseTime,
		ContributedRepos:     c.ContributedRepos,
		CodeReviewsCount:     c.CodeReviewsCount,
	}
}
