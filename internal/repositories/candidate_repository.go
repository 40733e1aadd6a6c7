package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
)

// candidateColumns is the scan order shared by every candidate query
const candidateColumns = `id, username, email, user_url, avatar_url, job_role,
	public_repos, followers, total_stars, total_forks, total_pr_merged,
	total_issues_opened, total_issues_closed, total_commits_last_year,
	total_commits_all_time, avg_commits_per_month, avg_issue_close_time,
	contributed_repos, code_reviews_count, commit_score, status, created_at, updated_at`

// SortColumns maps API sort keys to candidate table columns
var SortColumns = map[string]string{
	"commit_score":            "commit_score",
	"total_commits_last_year": "total_commits_last_year",
	"public_repos":            "public_repos",
	"followers":               "followers",
	"total_stars":             "total_stars",
}

type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) Create(candidate *models.Candidate) error {
	if candidate.ID == "" {
		candidate.ID = uuid.New().String()
	}

	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		candidate.ID, candidate.Username, candidate.Email, candidate.UserURL,
		candidate.AvatarURL, candidate.JobRole, candidate.PublicRepos, candidate.Followers,
		candidate.TotalStars, candidate.TotalForks, candidate.TotalPRsMerged,
		candidate.TotalIssuesOpened, candidate.TotalIssuesClosed, candidate.TotalCommitsLastYear,
		candidate.TotalCommitsAllTime, candidate.AvgCommitsPerMonth, candidate.AvgIssueCloseTime,
		candidate.ContributedRepos, candidate.CodeReviewsCount, candidate.CommitScore,
		candidate.Status, candidate.CreatedAt, candidate.UpdatedAt,
	)

	return err
}

func (r *CandidateRepository) GetByID(id string) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = ?`
	return r.scanOne(r.db.QueryRow(query, id))
}

func (r *CandidateRepository) GetByUsernameAndRole(username, jobRole string) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE username = ? AND job_role = ?`
	return r.scanOne(r.db.QueryRow(query, username, jobRole))
}

// Upsert inserts the candidate or refreshes an existing row for the same
// username and job role, preserving commit score and funnel status
func (r *CandidateRepository) Upsert(candidate *models.Candidate) error {
	existing, err := r.GetByUsernameAndRole(candidate.Username, candidate.JobRole)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	if existing != nil {
		candidate.ID = existing.ID
		candidate.CreatedAt = existing.CreatedAt
		candidate.CommitScore = existing.CommitScore
		candidate.Status = existing.Status
		return r.Update(candidate)
	}

	return r.Create(candidate)
}

func (r *CandidateRepository) Update(candidate *models.Candidate) error {
	candidate.UpdatedAt = time.Now()

	query := `
		UPDATE candidates SET
			username = ?, email = ?, user_url = ?, avatar_url = ?, job_role = ?,
			public_repos = ?, followers = ?, total_stars = ?, total_forks = ?,
			total_pr_merged = ?, total_issues_opened = ?, total_issues_closed = ?,
			total_commits_last_year = ?, total_commits_all_time = ?,
			avg_commits_per_month = ?, avg_issue_close_time = ?,
			contributed_repos = ?, code_reviews_count = ?, commit_score = ?,
			status = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		candidate.Username, candidate.Email, candidate.UserURL, candidate.AvatarURL,
		candidate.JobRole, candidate.PublicRepos, candidate.Followers, candidate.TotalStars,
		candidate.TotalForks, candidate.TotalPRsMerged, candidate.TotalIssuesOpened,
		candidate.TotalIssuesClosed, candidate.TotalCommitsLastYear, candidate.TotalCommitsAllTime,
		candidate.AvgCommitsPerMonth, candidate.AvgIssueCloseTime, candidate.ContributedRepos,
		candidate.CodeReviewsCount, candidate.CommitScore, candidate.Status,
		candidate.UpdatedAt, candidate.ID,
	)

	return err
}

// ListByRole returns candidates for a role ordered by the given column,
// highest first. The column must come from SortColumns.
func (r *CandidateRepository) ListByRole(jobRole, sortColumn string, limit int) ([]*models.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		WHERE job_role = ?
		ORDER BY ` + sortColumn + ` DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, jobRole, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// ListByStatus returns candidates in a funnel state, newest first
func (r *CandidateRepository) ListByStatus(status models.CandidateStatus) ([]*models.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		WHERE status = ?
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// GetAllByRole returns every candidate for a role regardless of status
func (r *CandidateRepository) GetAllByRole(jobRole string) ([]*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE job_role = ? ORDER BY username ASC`

	rows, err := r.db.Query(query, jobRole)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// UpdateCommitScore sets the commit relevance score for a candidate
func (r *CandidateRepository) UpdateCommitScore(id string, score float64) error {
	query := `UPDATE candidates SET commit_score = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, score, time.Now(), id)
	return err
}

// UpdateStatus moves a candidate to a new funnel state
func (r *CandidateRepository) UpdateStatus(id string, status models.CandidateStatus) error {
	query := `UPDATE candidates SET status = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, status, time.Now(), id)
	return err
}

func (r *CandidateRepository) Delete(id string) error {
	query := `DELETE FROM candidates WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *CandidateRepository) scanOne(row *sql.Row) (*models.Candidate, error) {
	candidate := &models.Candidate{}
	err := row.Scan(
		&candidate.ID, &candidate.Username, &candidate.Email, &candidate.UserURL,
		&candidate.AvatarURL, &candidate.JobRole, &candidate.PublicRepos, &candidate.Followers,
		&candidate.TotalStars, &candidate.TotalForks, &candidate.TotalPRsMerged,
		&candidate.TotalIssuesOpened, &candidate.TotalIssuesClosed, &candidate.TotalCommitsLastYear,
		&candidate.TotalCommitsAllTime, &candidate.AvgCommitsPerMonth, &candidate.AvgIssueCloseTime,
		&candidate.ContributedRepos, &candidate.CodeReviewsCount, &candidate.CommitScore,
		&candidate.Status, &candidate.CreatedAt, &candidate.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

func (r *CandidateRepository) scanAll(rows *sql.Rows) ([]*models.Candidate, error) {
	var candidates []*models.Candidate
	for rows.Next() {
		candidate := &models.Candidate{}
		err := rows.Scan(
			&candidate.ID, &candidate.Username, &candidate.Email, &candidate.UserURL,
			&candidate.AvatarURL, &candidate.JobRole, &candidate.PublicRepos, &candidate.Followers,
			&candidate.TotalStars, &candidate.TotalForks, &candidate.TotalPRsMerged,
			&candidate.TotalIssuesOpened, &candidate.TotalIssuesClosed, &candidate.TotalCommitsLastYear,
			&candidate.TotalCommitsAllTime, &candidate.AvgCommitsPerMonth, &candidate.AvgIssueCloseTime,
			&candidate.ContributedRepos, &candidate.CodeReviewsCount, &candidate.CommitScore,
			&candidate.Status, &candidate.CreatedAt, &candidate.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}

	return candidates, rows.Err()
}
