package repositories

import (
	"database/sql"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
)

type ShortlistRepository struct {
	db *sql.DB
}

func NewShortlistRepository(db *sql.DB) *ShortlistRepository {
	return &ShortlistRepository{db: db}
}

func (r *ShortlistRepository) Create(entry *models.Shortlist) error {
	query := `
		INSERT INTO shortlists (id, candidate_id, job_role, email_sent_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		entry.ID, entry.CandidateID, entry.JobRole, entry.EmailSentAt, entry.CreatedAt,
	)
	return err
}

func (r *ShortlistRepository) GetByCandidateID(candidateID string) (*models.Shortlist, error) {
	query := `
		SELECT id, candidate_id, job_role, email_sent_at, created_at
		FROM shortlists WHERE candidate_id = ?
	`

	entry := &models.Shortlist{}
	err := r.db.QueryRow(query, candidateID).Scan(
		&entry.ID, &entry.CandidateID, &entry.JobRole, &entry.EmailSentAt, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *ShortlistRepository) ListByRole(jobRole string) ([]*models.Shortlist, error) {
	query := `
		SELECT id, candidate_id, job_role, email_sent_at, created_at
		FROM shortlists
		WHERE job_role = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, jobRole)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.Shortlist
	for rows.Next() {
		entry := &models.Shortlist{}
		err := rows.Scan(
			&entry.ID, &entry.CandidateID, &entry.JobRole, &entry.EmailSentAt, &entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *ShortlistRepository) Delete(id string) error {
	query := `DELETE FROM shortlists WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}

// Exists reports whether a candidate is already shortlisted
func (r *ShortlistRepository) Exists(candidateID string) (bool, error) {
	_, err := r.GetByCandidateID(candidateID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
