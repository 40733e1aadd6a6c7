package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/logger"
)

// ErrTokensExhausted is returned when every token in the ring hit its rate
// limit for the same call. It is terminal: the harvest run cannot continue.
var ErrTokensExhausted = errors.New("all GitHub tokens exhausted")

// errNoData marks a call that failed for a non-quota reason (unexpected
// status or transport failure). Callers treat it as "no data" and continue.
var errNoData = errors.New("no data from GitHub API")

const searchPageSize = 30

// IssueCounts holds per-repository issue totals split by state, plus the
// close-latency accumulators for closed issues that carry both timestamps.
type IssueCounts struct {
	Opened        int
	Closed        int
	CloseDays     int
	WithCloseTime int
}

// GitHubAPIService issues the outbound GitHub calls for the harvester. Every
// call goes through a bounded rotate-and-retry loop: a quota-exhaustion
// response rotates the token ring and retries the identical call with the
// new credential, each credential at most once. Any other failure is logged
// and degraded to an empty result.
type GitHubAPIService struct {
	ring    *TokenRing
	baseURL string

	mu     sync.Mutex
	client *github.Client
}

// NewGitHubAPIService creates the service over a token ring. baseURL
// overrides the API root (GitHub Enterprise, tests); empty means github.com.
func NewGitHubAPIService(ring *TokenRing, baseURL string) *GitHubAPIService {
	s := &GitHubAPIService{
		ring:    ring,
		baseURL: baseURL,
	}
	s.client = s.newClient(ring.Active())
	return s
}

// newClient builds an authenticated go-github client for the given token
func (s *GitHubAPIService) newClient(token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)

	if s.baseURL != "" {
		if u, err := url.Parse(s.baseURL); err == nil {
			client.BaseURL = u
		}
	}

	return client
}

// currentClient returns the client for the active token
func (s *GitHubAPIService) currentClient() *github.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// rotate switches to the next token and rebuilds the client for it
func (s *GitHubAPIService) rotate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = s.newClient(s.ring.Rotate())
}

// do runs one logical API call through the rotation loop
func (s *GitHubAPIService) do(op string, fn func(client *github.Client) (*github.Response, error)) error {
	for attempt := 0; attempt < s.ring.Len(); attempt++ {
		resp, err := fn(s.currentClient())
		if err == nil {
			return nil
		}

		if isQuotaExhausted(resp, err) {
			logger.WithField("operation", op).Warn("GitHub quota exhausted, rotating token")
			s.rotate()
			continue
		}

		if resp != nil {
			logger.WithFields(logrus.Fields{
				"operation": op,
				"status":    resp.StatusCode,
			}).Warn("Unexpected GitHub API status")
		} else {
			logger.WithError(err).WithField("operation", op).Warn("GitHub request failed")
		}
		return errNoData
	}

	logger.WithField("operation", op).Error("All GitHub tokens exhausted")
	return ErrTokensExhausted
}

// isQuotaExhausted reports whether the response means the active token
// cannot make further calls until its window resets
func isQuotaExhausted(resp *github.Response, err error) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}
	return resp != nil && resp.StatusCode == http.StatusForbidden
}

// SearchUsers fetches one page of the user search, sorted descending
func (s *GitHubAPIService) SearchUsers(ctx context.Context, query, sort string, page int) ([]*github.User, error) {
	var result *github.UsersSearchResult
	err := s.do("search users", func(client *github.Client) (*github.Response, error) {
		var resp *github.Response
		var err error
		result, resp, err = client.Search.Users(ctx, query, &github.SearchOptions{
			Sort:  sort,
			Order: "desc",
			ListOptions: github.ListOptions{
				Page:    page,
				PerPage: searchPageSize,
			},
		})
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return result.Users, nil
}

// GetUserDetails fetches the full profile for a login
func (s *GitHubAPIService) GetUserDetails(ctx context.Context, username string) (*github.User, error) {
	var user *github.User
	err := s.do("get user", func(client *github.Client) (*github.Response, error) {
		var resp *github.Response
		var err error
		user, resp, err = client.Users.Get(ctx, username)
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListRepositories fetches the repositories owned by a user
func (s *GitHubAPIService) ListRepositories(ctx context.Context, username string) ([]*github.Repository, error) {
	var repos []*github.Repository
	err := s.do("list repositories", func(client *github.Client) (*github.Response, error) {
		var resp *github.Response
		var err error
		repos, resp, err = client.Repositories.List(ctx, username, &github.RepositoryListOptions{
			ListOptions: github.ListOptions{PerPage: 100},
		})
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

// CountMergedPullRequests counts closed pull requests that carry a merge timestamp
func (s *GitHubAPIService) CountMergedPullRequests(ctx context.Context, owner, repo string) (int, error) {
	var prs []*github.PullRequest
	err := s.do("list pull requests", func(client *github.Client) (*github.Response, error) {
		var resp *github.Response
		var err error
		prs, resp, err = client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
			State:       "closed",
			ListOptions: github.ListOptions{PerPage: 100},
		})
		return resp, err
	})
	if err != nil {
		return 0, err
	}

	merged := 0
	for _, pr := range prs {
		if pr.MergedAt != nil {
			merged++
		}
	}
	return merged, nil
}

// CountIssues splits a repository's issues by state and accumulates the
// close latency, in whole days, of closed issues that have both timestamps
func (s *GitHubAPIService) CountIssues(ctx context.Context, owner, repo string) (*IssueCounts, error) {
	var issues []*github.Issue
	err := s.do("list issues", func(client *github.Client) (*github.Response, error) {
		var resp *github.Response
		var err error
		issues, resp, err = client.Issues.ListByRepo(ctx, owner, repo, &github.IssueListByRepoOptions{
			State:       "all",
			ListOptions: github.ListOptions{PerPage: 100},
		})
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	counts := &IssueCounts{}
	for _, issue := range issues {
		switch issue.GetState() {
		case "open":
			counts.Opened++
		case "closed":
			counts.Closed++
			if issue.CreatedAt != nil && issue.ClosedAt != nil {
				counts.CloseDays += int(issue.ClosedAt.Time.Sub(issue.CreatedAt.Time).Hours() / 24)
				counts.WithCloseTime++
			}
		}
	}
	return counts, nil
}

// CountCommits counts a repository's commits, optionally windowed by a
// server-side "since" filter
func (s *GitHubAPIService) CountCommits(ctx context.Context, owner, repo string, since time.Time) (int, error) {
	var commits []*github.RepositoryCommit
	err := s.do("list commits", func(client *github.Client) (*github.Response, error) {
		var resp *github.Response
		var err error
		commits, resp, err = client.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
			Since:       since,
			ListOptions: github.ListOptions{PerPage: 100},
		})
		return resp, err
	})
	if err != nil {
		return 0, err
	}
	return len(commits), nil
}

// ListRecentEvents fetches the user's recent public event feed
func (s *GitHubAPIService) ListRecentEvents(ctx context.Context, username string) ([]*github.Event, error) {
	var events []*github.Event
	err := s.do("list events", func(client *github.Client) (*github.Response, error) {
		var resp *github.Response
		var err error
		events, resp, err = client.Activity.ListEventsPerformedByUser(ctx, username, true, &github.ListOptions{
			PerPage: 100,
		})
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
