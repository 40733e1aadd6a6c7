package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
)

func TestJobLifecycle(t *testing.T) {
	repo := NewJobRepository(newTestDB(t))

	job := models.NewJob(models.JobTypeHarvest, "Data Science")
	job.SearchQuery = "data science"
	job.SearchPages = 2
	require.NoError(t, repo.Create(job))

	t.Run("GetByID returns the stored job", func(t *testing.T) {
		got, err := repo.GetByID(job.ID)
		require.NoError(t, err)
		assert.Equal(t, models.JobTypeHarvest, got.JobType)
		assert.Equal(t, "data science", got.SearchQuery)
		assert.Equal(t, 2, got.SearchPages)
		assert.True(t, got.IsPending())
	})

	t.Run("Update persists status transitions", func(t *testing.T) {
		job.MarkStarted()
		job.MarkCompleted()
		require.NoError(t, repo.Update(job))

		got, err := repo.GetByID(job.ID)
		require.NoError(t, err)
		assert.True(t, got.IsCompleted())
		assert.NotNil(t, got.StartedAt)
		assert.NotNil(t, got.CompletedAt)
	})
}

func TestGetNextPendingJob(t *testing.T) {
	t.Run("FIFO order within a job type", func(t *testing.T) {
		repo := NewJobRepository(newTestDB(t))

		first := models.NewJob(models.JobTypeHarvest, "Data Science")
		require.NoError(t, repo.Create(first))
		second := models.NewJob(models.JobTypeHarvest, "Java Developer")
		second.CreatedAt = second.CreatedAt.Add(time.Second)
		require.NoError(t, repo.Create(second))

		got, err := repo.GetNextPendingJob(models.JobTypeHarvest)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, models.JobStatusInProgress, got.Status)
	})

	t.Run("Claimed jobs are not handed out twice", func(t *testing.T) {
		repo := NewJobRepository(newTestDB(t))

		job := models.NewJob(models.JobTypeScore, "Data Science")
		require.NoError(t, repo.Create(job))

		got, err := repo.GetNextPendingJob(models.JobTypeScore)
		require.NoError(t, err)
		require.NotNil(t, got)

		again, err := repo.GetNextPendingJob(models.JobTypeScore)
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("Job types do not cross over", func(t *testing.T) {
		repo := NewJobRepository(newTestDB(t))

		job := models.NewJob(models.JobTypeHarvest, "Data Science")
		require.NoError(t, repo.Create(job))

		got, err := repo.GetNextPendingJob(models.JobTypeScore)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Dependent job waits for its dependency", func(t *testing.T) {
		repo := NewJobRepository(newTestDB(t))

		harvest := models.NewJob(models.JobTypeHarvest, "Data Science")
		require.NoError(t, repo.Create(harvest))

		score := models.NewJob(models.JobTypeScore, "Data Science")
		score.DependsOn = &harvest.ID
		require.NoError(t, repo.Create(score))

		// Dependency still pending
		got, err := repo.GetNextPendingJob(models.JobTypeScore)
		require.NoError(t, err)
		assert.Nil(t, got)

		// Complete the harvest and the score job becomes eligible
		claimed, err := repo.GetNextPendingJob(models.JobTypeHarvest)
		require.NoError(t, err)
		require.NotNil(t, claimed)
		claimed.MarkCompleted()
		require.NoError(t, repo.Update(claimed))

		got, err = repo.GetNextPendingJob(models.JobTypeScore)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, score.ID, got.ID)
	})

	t.Run("Failed dependency blocks the dependent job", func(t *testing.T) {
		repo := NewJobRepository(newTestDB(t))

		harvest := models.NewJob(models.JobTypeHarvest, "Data Science")
		require.NoError(t, repo.Create(harvest))

		score := models.NewJob(models.JobTypeScore, "Data Science")
		score.DependsOn = &harvest.ID
		require.NoError(t, repo.Create(score))

		claimed, err := repo.GetNextPendingJob(models.JobTypeHarvest)
		require.NoError(t, err)
		require.NotNil(t, claimed)
		claimed.SetError("tokens exhausted")
		claimed.MarkFailed()
		require.NoError(t, repo.Update(claimed))

		got, err := repo.GetNextPendingJob(models.JobTypeScore)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
