package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
)

func harvestedCandidate(username, role string) *models.Candidate {
	return models.NewCandidate(&models.HarvestRecord{
		Username: username,
		Email:    username + "@example.com",
		UserURL:  "https://github.com/" + username,
	}, role)
}

func TestCandidateCreateAndGet(t *testing.T) {
	repo := NewCandidateRepository(newTestDB(t))

	candidate := harvestedCandidate("octocat", "Data Science")
	candidate.TotalStars = 42
	require.NoError(t, repo.Create(candidate))

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(candidate.ID)
		require.NoError(t, err)
		assert.Equal(t, "octocat", got.Username)
		assert.Equal(t, 42, got.TotalStars)
		assert.Equal(t, models.CandidateStatusHarvested, got.Status)
	})

	t.Run("GetByUsernameAndRole", func(t *testing.T) {
		got, err := repo.GetByUsernameAndRole("octocat", "Data Science")
		require.NoError(t, err)
		assert.Equal(t, candidate.ID, got.ID)
	})
}

func TestCandidateUpsert(t *testing.T) {
	repo := NewCandidateRepository(newTestDB(t))

	first := harvestedCandidate("octocat", "Data Science")
	first.Followers = 10
	require.NoError(t, repo.Upsert(first))

	require.NoError(t, repo.UpdateCommitScore(first.ID, 3.5))
	require.NoError(t, repo.UpdateStatus(first.ID, models.CandidateStatusShortlisted))

	t.Run("Refresh keeps score and funnel status", func(t *testing.T) {
		refreshed := harvestedCandidate("octocat", "Data Science")
		refreshed.Followers = 25
		require.NoError(t, repo.Upsert(refreshed))

		// Same row, updated metrics, preserved score and status
		assert.Equal(t, first.ID, refreshed.ID)

		got, err := repo.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, 25, got.Followers)
		assert.Equal(t, 3.5, got.CommitScore)
		assert.Equal(t, models.CandidateStatusShortlisted, got.Status)
	})

	t.Run("Same username under another role is a new row", func(t *testing.T) {
		other := harvestedCandidate("octocat", "Java Developer")
		require.NoError(t, repo.Upsert(other))

		assert.NotEqual(t, first.ID, other.ID)
	})
}

func TestCandidateListByRole(t *testing.T) {
	repo := NewCandidateRepository(newTestDB(t))

	for i, username := range []string{"low", "mid", "high"} {
		candidate := harvestedCandidate(username, "Data Science")
		candidate.TotalStars = (i + 1) * 10
		require.NoError(t, repo.Create(candidate))
	}
	outsider := harvestedCandidate("other", "Java Developer")
	require.NoError(t, repo.Create(outsider))

	t.Run("Sorted descending and limited", func(t *testing.T) {
		got, err := repo.ListByRole("Data Science", SortColumns["total_stars"], 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "high", got[0].Username)
		assert.Equal(t, "mid", got[1].Username)
	})

	t.Run("Other roles are excluded", func(t *testing.T) {
		got, err := repo.ListByRole("Data Science", SortColumns["total_stars"], 10)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestCandidateStatusTransitions(t *testing.T) {
	repo := NewCandidateRepository(newTestDB(t))

	candidate := harvestedCandidate("octocat", "Data Science")
	require.NoError(t, repo.Create(candidate))

	require.NoError(t, repo.UpdateStatus(candidate.ID, models.CandidateStatusRejected))

	rejected, err := repo.ListByStatus(models.CandidateStatusRejected)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, "octocat", rejected[0].Username)
}
