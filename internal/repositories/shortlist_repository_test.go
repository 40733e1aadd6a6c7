package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
)

func TestShortlistRepository(t *testing.T) {
	db := newTestDB(t)
	candidateRepo := NewCandidateRepository(db)
	repo := NewShortlistRepository(db)

	candidate := harvestedCandidate("octocat", "Data Science")
	require.NoError(t, candidateRepo.Create(candidate))

	t.Run("Exists is false before shortlisting", func(t *testing.T) {
		exists, err := repo.Exists(candidate.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Create and read back", func(t *testing.T) {
		entry := models.NewShortlist(candidate.ID, candidate.JobRole)
		entry.MarkEmailSent()
		require.NoError(t, repo.Create(entry))

		got, err := repo.GetByCandidateID(candidate.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
		assert.Equal(t, "Data Science", got.JobRole)
		assert.NotNil(t, got.EmailSentAt)

		exists, err := repo.Exists(candidate.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("ListByRole", func(t *testing.T) {
		entries, err := repo.ListByRole("Data Science")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, candidate.ID, entries[0].CandidateID)

		empty, err := repo.ListByRole("Java Developer")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("Duplicate shortlist is rejected by the schema", func(t *testing.T) {
		dup := models.NewShortlist(candidate.ID, candidate.JobRole)
		assert.Error(t, repo.Create(dup))
	})
}
