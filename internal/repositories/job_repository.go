package repositories

import (
	"database/sql"
	"sync"
	"time"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
)

// JobRepository handles database operations for jobs
type JobRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, job_type, job_role, search_query, search_pages, status,
	error_message, depends_on, started_at, completed_at, worker_id, created_at, updated_at`

// Create creates a new job
func (r *JobRepository) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		job.ID,
		job.JobType,
		job.JobRole,
		job.SearchQuery,
		job.SearchPages,
		job.Status,
		job.ErrorMessage,
		job.DependsOn,
		job.StartedAt,
		job.CompletedAt,
		job.WorkerID,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(id string) (*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	job := &models.Job{}
	err := r.db.QueryRow(query, id).Scan(
		&job.ID,
		&job.JobType,
		&job.JobRole,
		&job.SearchQuery,
		&job.SearchPages,
		&job.Status,
		&job.ErrorMessage,
		&job.DependsOn,
		&job.StartedAt,
		&job.CompletedAt,
		&job.WorkerID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return job, nil
}

// GetRecent retrieves the most recently created jobs
func (r *JobRepository) GetRecent(limit int) ([]*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job := &models.Job{}
		err := rows.Scan(
			&job.ID,
			&job.JobType,
			&job.JobRole,
			&job.SearchQuery,
			&job.SearchPages,
			&job.Status,
			&job.ErrorMessage,
			&job.DependsOn,
			&job.StartedAt,
			&job.CompletedAt,
			&job.WorkerID,
			&job.CreatedAt,
			&job.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// GetNextPendingJob retrieves the next pending job of a specific type (FIFO)
// and marks it in-progress. Jobs with an incomplete dependency are skipped.
func (r *JobRepository) GetNextPendingJob(jobType models.JobType) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		SELECT j.id, j.job_type, j.job_role, j.search_query, j.search_pages, j.status,
		       j.error_message, j.depends_on, j.started_at, j.completed_at, j.worker_id,
		       j.created_at, j.updated_at
		FROM jobs j
		LEFT JOIN jobs dep ON j.depends_on = dep.id
		WHERE j.status = ? AND j.job_type = ?
		AND (j.depends_on IS NULL OR dep.status = ?)
		ORDER BY j.created_at ASC
		LIMIT 1
	`

	job := &models.Job{}
	err = tx.QueryRow(query, models.JobStatusPending, jobType, models.JobStatusCompleted).Scan(
		&job.ID,
		&job.JobType,
		&job.JobRole,
		&job.SearchQuery,
		&job.SearchPages,
		&job.Status,
		&job.ErrorMessage,
		&job.DependsOn,
		&job.StartedAt,
		&job.CompletedAt,
		&job.WorkerID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No pending jobs found
		}
		return nil, err
	}

	job.MarkStarted()
	updateQuery := `UPDATE jobs SET status = ?, started_at = ?, updated_at = ? WHERE id = ?`
	if _, err = tx.Exec(updateQuery, job.Status, job.StartedAt, time.Now(), job.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return job, nil
}

// Update updates a job
func (r *JobRepository) Update(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE jobs
		SET job_type = ?, job_role = ?, search_query = ?, search_pages = ?, status = ?,
		    error_message = ?, depends_on = ?, started_at = ?, completed_at = ?,
		    worker_id = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		job.JobType,
		job.JobRole,
		job.SearchQuery,
		job.SearchPages,
		job.Status,
		job.ErrorMessage,
		job.DependsOn,
		job.StartedAt,
		job.CompletedAt,
		job.WorkerID,
		time.Now(),
		job.ID,
	)
	return err
}

// Delete deletes a job by ID
func (r *JobRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `DELETE FROM jobs WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}
