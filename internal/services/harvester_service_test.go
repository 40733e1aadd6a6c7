package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
)

func TestEmailValidation(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		valid bool
	}{
		{"Plain address", "dev@example.com", true},
		{"Dots and dashes", "a.b-c@sub.domain.co", true},
		{"Plus tag", "dev+gh@example.io", true},
		{"Missing at sign", "no-at-sign.com", false},
		{"Domain without dot", "a@b", false},
		{"Empty string", "", false},
		{"Missing local part", "@example.com", false},
		{"Whitespace inside", "dev @example.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidEmail(tc.email))
		})
	}
}

func TestRepositoryMetricsFinalize(t *testing.T) {
	t.Run("Averages computed from accumulators", func(t *testing.T) {
		metrics := &models.RepositoryMetrics{
			TotalCommitsLastYear: 24,
			IssueCloseDays:       10,
			IssuesWithCloseTime:  4,
		}
		metrics.Finalize()

		assert.Equal(t, 2.0, metrics.AvgCommitsPerMonth)
		assert.Equal(t, 2.5, metrics.AvgIssueCloseTime)
	})

	t.Run("Zero denominators yield zero averages", func(t *testing.T) {
		metrics := &models.RepositoryMetrics{}
		metrics.Finalize()

		assert.Equal(t, 0.0, metrics.AvgCommitsPerMonth)
		assert.Equal(t, 0.0, metrics.AvgIssueCloseTime)
	})
}

func TestSummarizeEvents(t *testing.T) {
	event := func(eventType, repo string) *github.Event {
		return &github.Event{
			Type: github.String(eventType),
			Repo: &github.Repository{Name: github.String(repo)},
		}
	}

	t.Run("Distinct repositories across contribution events", func(t *testing.T) {
		summary := SummarizeEvents([]*github.Event{
			event("PushEvent", "alice/widget"),
			event("PushEvent", "alice/widget"),
			event("PullRequestEvent", "org/api"),
			event("IssueCommentEvent", "org/docs"),
			event("WatchEvent", "org/starred"),
		})

		assert.Equal(t, 3, summary.ContributedRepos)
		assert.Equal(t, 0, summary.CodeReviews)
	})

	t.Run("Review events are counted not deduplicated", func(t *testing.T) {
		summary := SummarizeEvents([]*github.Event{
			event("PullRequestReviewEvent", "org/api"),
			event("PullRequestReviewEvent", "org/api"),
		})

		assert.Equal(t, 0, summary.ContributedRepos)
		assert.Equal(t, 2, summary.CodeReviews)
	})

	t.Run("Empty feed", func(t *testing.T) {
		summary := SummarizeEvents(nil)

		assert.Equal(t, 0, summary.ContributedRepos)
		assert.Equal(t, 0, summary.CodeReviews)
	})
}

// fakeGitHub is a minimal fake of the endpoints the harvester touches
type fakeGitHub struct {
	mux *http.ServeMux
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{mux: http.NewServeMux()}
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mux.ServeHTTP(w, r)
}

func (f *fakeGitHub) respond(pattern, body string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})
}

func (f *fakeGitHub) fail(pattern string, status int) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

func TestHarvesterRun(t *testing.T) {
	t.Run("User with zero repositories still yields an all-zero record", func(t *testing.T) {
		fake := newFakeGitHub()
		fake.respond("/search/users", `{"total_count":1,"items":[{"login":"octocat"}]}`)
		fake.respond("/users/octocat", `{
			"login":"octocat",
			"email":"octocat@github.com",
			"html_url":"https://github.com/octocat",
			"avatar_url":"https://avatars.example.com/octocat",
			"public_repos":0,
			"followers":7
		}`)
		fake.respond("/users/octocat/repos", `[]`)
		fake.respond("/users/octocat/events/public", `[]`)

		service := NewHarvesterService(newTestAPIService(t, []string{"token"}, fake))
		records, err := service.Run(context.Background(), HarvestOptions{Query: "data science", Sort: "repositories", Pages: 1})

		require.NoError(t, err)
		require.Len(t, records, 1)

		record := records[0]
		assert.Equal(t, "octocat", record.Username)
		assert.Equal(t, "octocat@github.com", record.Email)
		assert.Equal(t, "https://github.com/octocat", record.UserURL)
		assert.Equal(t, 7, record.Followers)
		assert.Equal(t, 0, record.TotalStars)
		assert.Equal(t, 0, record.TotalCommitsAllTime)
		assert.Equal(t, 0.0, record.AvgCommitsPerMonth)
		assert.Equal(t, 0, record.ContributedRepos)
	})

	t.Run("Repository metrics aggregated across owned repos", func(t *testing.T) {
		fake := newFakeGitHub()
		fake.respond("/search/users", `{"total_count":1,"items":[{"login":"alice"}]}`)
		fake.respond("/users/alice", `{"login":"alice","email":"alice@example.com","public_repos":2,"followers":3}`)
		fake.respond("/users/alice/repos", `[
			{"name":"widget","stargazers_count":10,"forks_count":2},
			{"name":"gadget","stargazers_count":5,"forks_count":1}
		]`)
		fake.respond("/repos/alice/widget/pulls", `[{"number":1,"merged_at":"2025-01-10T12:00:00Z"}]`)
		fake.respond("/repos/alice/gadget/pulls", `[]`)
		fake.respond("/repos/alice/widget/issues", `[
			{"number":1,"state":"open"},
			{"number":2,"state":"closed","created_at":"2025-01-01T00:00:00Z","closed_at":"2025-01-03T00:00:00Z"}
		]`)
		fake.respond("/repos/alice/gadget/issues", `[]`)
		fake.mux.HandleFunc("/repos/alice/widget/commits", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("since") != "" {
				fmt.Fprint(w, `[{"sha":"a"},{"sha":"b"},{"sha":"c"}]`)
				return
			}
			fmt.Fprint(w, `[{"sha":"a"},{"sha":"b"},{"sha":"c"},{"sha":"d"}]`)
		})
		fake.respond("/repos/alice/gadget/commits", `[{"sha":"e"}]`)
		fake.respond("/users/alice/events/public", `[
			{"type":"PushEvent","repo":{"name":"alice/widget"}},
			{"type":"PullRequestReviewEvent","repo":{"name":"org/api"}}
		]`)

		service := NewHarvesterService(newTestAPIService(t, []string{"token"}, fake))
		records, err := service.Run(context.Background(), HarvestOptions{Query: "q", Sort: "repositories", Pages: 1})

		require.NoError(t, err)
		require.Len(t, records, 1)

		record := records[0]
		assert.Equal(t, 15, record.TotalStars)
		assert.Equal(t, 3, record.TotalForks)
		assert.Equal(t, 1, record.TotalPRsMerged)
		assert.Equal(t, 1, record.TotalIssuesOpened)
		assert.Equal(t, 1, record.TotalIssuesClosed)
		assert.Equal(t, 4, record.TotalCommitsLastYear)
		assert.Equal(t, 5, record.TotalCommitsAllTime)
		assert.InDelta(t, 4.0/12, record.AvgCommitsPerMonth, 1e-9)
		assert.Equal(t, 2.0, record.AvgIssueCloseTime)
		assert.Equal(t, 1, record.ContributedRepos)
		assert.Equal(t, 1, record.CodeReviewsCount)
	})

	t.Run("User without a usable email is dropped", func(t *testing.T) {
		fake := newFakeGitHub()
		fake.respond("/search/users", `{"total_count":1,"items":[{"login":"ghost"}]}`)
		fake.respond("/users/ghost", `{"login":"ghost"}`)

		service := NewHarvesterService(newTestAPIService(t, []string{"token"}, fake))
		records, err := service.Run(context.Background(), HarvestOptions{Query: "q", Sort: "repositories", Pages: 1})

		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Repository listing failure drops the candidate", func(t *testing.T) {
		fake := newFakeGitHub()
		fake.respond("/search/users", `{"total_count":2,"items":[{"login":"broken"},{"login":"fine"}]}`)
		fake.respond("/users/broken", `{"login":"broken","email":"broken@example.com"}`)
		fake.fail("/users/broken/repos", http.StatusInternalServerError)
		fake.respond("/users/fine", `{"login":"fine","email":"fine@example.com"}`)
		fake.respond("/users/fine/repos", `[]`)
		fake.respond("/users/fine/events/public", `[]`)

		service := NewHarvesterService(newTestAPIService(t, []string{"token"}, fake))
		records, err := service.Run(context.Background(), HarvestOptions{Query: "q", Sort: "repositories", Pages: 1})

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "fine", records[0].Username)
	})

	t.Run("Exhausted tokens abort the run but keep earlier records", func(t *testing.T) {
		fake := newFakeGitHub()
		fake.respond("/search/users", `{"total_count":2,"items":[{"login":"kept"},{"login":"cut"}]}`)
		fake.respond("/users/kept", `{"login":"kept","email":"kept@example.com"}`)
		fake.respond("/users/kept/repos", `[]`)
		fake.respond("/users/kept/events/public", `[]`)
		fake.fail("/users/cut", http.StatusForbidden)

		service := NewHarvesterService(newTestAPIService(t, []string{"token"}, fake))
		records, err := service.Run(context.Background(), HarvestOptions{Query: "q", Sort: "repositories", Pages: 1})

		assert.ErrorIs(t, err, ErrTokensExhausted)
		require.Len(t, records, 1)
		assert.Equal(t, "kept", records[0].Username)
	})

	t.Run("Failed search page is skipped and later pages still run", func(t *testing.T) {
		fake := newFakeGitHub()
		fake.mux.HandleFunc("/search/users", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "1" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, `{"total_count":1,"items":[{"login":"late"}]}`)
		})
		fake.respond("/users/late", `{"login":"late","email":"late@example.com"}`)
		fake.respond("/users/late/repos", `[]`)
		fake.respond("/users/late/events/public", `[]`)

		service := NewHarvesterService(newTestAPIService(t, []string{"token"}, fake))
		records, err := service.Run(context.Background(), HarvestOptions{Query: "q", Sort: "repositories", Pages: 2})

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "late", records[0].Username)
	})
}
