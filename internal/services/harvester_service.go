package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/logger"
)

// emailRegex accepts local-part@domain.tld; the domain must contain a dot
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// IsValidEmail reports whether an email is a usable public contact address
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// HarvestOptions configures one harvest run
type HarvestOptions struct {
	Query   string
	Sort    string
	Pages   int
	JobRole string
}

// HarvesterService drives the search -> detail -> metrics -> activity
// pipeline. Pages, users within a page and repositories within a user are
// processed strictly in order, so the output order is deterministic.
type HarvesterService struct {
	api *GitHubAPIService
}

// NewHarvesterService creates a new HarvesterService
func NewHarvesterService(api *GitHubAPIService) *HarvesterService {
	return &HarvesterService{api: api}
}

// Run harvests all configured search pages and returns the records of every
// candidate that survived filtering. A terminal ErrTokensExhausted aborts
// the run; the records collected up to that point are still returned.
func (s *HarvesterService) Run(ctx context.Context, opts HarvestOptions) ([]*models.HarvestRecord, error) {
	var records []*models.HarvestRecord

	for page := 1; page <= opts.Pages; page++ {
		logger.WithFields(logrus.Fields{"page": page, "query": opts.Query}).Info("Fetching search page")

		users, err := s.api.SearchUsers(ctx, opts.Query, opts.Sort, page)
		if errors.Is(err, ErrTokensExhausted) {
			return records, err
		}
		if err != nil {
			logger.WithField("page", page).Warn("No user data for search page")
			continue
		}

		for _, user := range users {
			login := user.GetLogin()
			if login == "" {
				continue
			}

			record, err := s.harvestUser(ctx, login)
			if err != nil {
				return records, err
			}
			if record != nil {
				records = append(records, record)
				logger.WithField("username", login).Info("Harvested candidate")
			}
		}
	}

	return records, nil
}

// harvestUser runs stages 2-4 for one login. A nil record means the user
// was filtered out (invalid email or failed metrics fetch); a non-nil error
// is always ErrTokensExhausted.
func (s *HarvesterService) harvestUser(ctx context.Context, login string) (*models.HarvestRecord, error) {
	details, err := s.api.GetUserDetails(ctx, login)
	if errors.Is(err, ErrTokensExhausted) {
		return nil, err
	}
	if err != nil {
		return nil, nil
	}

	if !IsValidEmail(details.GetEmail()) {
		logger.WithField("username", login).Debug("Invalid or missing email, dropping user")
		return nil, nil
	}

	metrics, err := s.aggregateRepositoryMetrics(ctx, login)
	if errors.Is(err, ErrTokensExhausted) {
		return nil, err
	}
	if err != nil {
		// An outright metrics failure excludes the user; an all-zero
		// aggregate does not.
		logger.WithField("username", login).Warn("Failed to fetch repository metrics, dropping user")
		return nil, nil
	}

	summary, err := s.summarizeActivity(ctx, login)
	if err != nil {
		return nil, err
	}

	return &models.HarvestRecord{
		Username:             login,
		Email:                details.GetEmail(),
		UserURL:              details.GetHTMLURL(),
		AvatarURL:            details.GetAvatarURL(),
		PublicRepos:          details.GetPublicRepos(),
		Followers:            details.GetFollowers(),
		TotalStars:           metrics.TotalStars,
		TotalForks:           metrics.TotalForks,
		TotalPRsMerged:       metrics.TotalPRsMerged,
		TotalIssuesOpened:    metrics.TotalIssuesOpened,
		TotalIssuesClosed:    metrics.TotalIssuesClosed,
		TotalCommitsLastYear: metrics.TotalCommitsLastYear,
		TotalCommitsAllTime:  metrics.TotalCommitsAllTime,
		AvgCommitsPerMonth:   metrics.AvgCommitsPerMonth,
		AvgIssueCloseTime:    metrics.AvgIssueCloseTime,
		ContributedRepos:     summary.ContributedRepos,
		CodeReviewsCount:     summary.CodeReviews,
	}, nil
}

// aggregateRepositoryMetrics sums stars, forks, merged PRs, issue counts and
// commit counts across every repository owned by the user. Failures of the
// nested per-repository calls degrade to zero; only a failure of the
// repository listing itself is reported to the caller.
func (s *HarvesterService) aggregateRepositoryMetrics(ctx context.Context, username string) (*models.RepositoryMetrics, error) {
	repos, err := s.api.ListRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	metrics := &models.RepositoryMetrics{}
	since := time.Now().AddDate(0, 0, -365)

	for _, repo := range repos {
		name := repo.GetName()
		if name == "" {
			continue
		}

		metrics.TotalStars += repo.GetStargazersCount()
		metrics.TotalForks += repo.GetForksCount()

		merged, err := s.api.CountMergedPullRequests(ctx, username, name)
		if errors.Is(err, ErrTokensExhausted) {
			return nil, err
		}
		if err == nil {
			metrics.TotalPRsMerged += merged
		}

		issues, err := s.api.CountIssues(ctx, username, name)
		if errors.Is(err, ErrTokensExhausted) {
			return nil, err
		}
		if err == nil {
			metrics.TotalIssuesOpened += issues.Opened
			metrics.TotalIssuesClosed += issues.Closed
			metrics.IssueCloseDays += issues.CloseDays
			metrics.IssuesWithCloseTime += issues.WithCloseTime
		}

		lastYear, err := s.api.CountCommits(ctx, username, name, since)
		if errors.Is(err, ErrTokensExhausted) {
			return nil, err
		}
		if err == nil {
			metrics.TotalCommitsLastYear += lastYear
		}

		allTime, err := s.api.CountCommits(ctx, username, name, time.Time{})
		if errors.Is(err, ErrTokensExhausted) {
			return nil, err
		}
		if err == nil {
			metrics.TotalCommitsAllTime += allTime
		}
	}

	metrics.Finalize()
	return metrics, nil
}

// summarizeActivity derives contribution counts from the recent public
// event feed. A failed fetch degrades to zero counts.
func (s *HarvesterService) summarizeActivity(ctx context.Context, username string) (*models.ContributionSummary, error) {
	events, err := s.api.ListRecentEvents(ctx, username)
	if errors.Is(err, ErrTokensExhausted) {
		return nil, err
	}
	if err != nil {
		return &models.ContributionSummary{}, nil
	}

	return SummarizeEvents(events), nil
}

// SummarizeEvents counts distinct repositories touched via push, pull
// request and comment events, and the number of review events
func SummarizeEvents(events []*github.Event) *models.ContributionSummary {
	summary := &models.ContributionSummary{}
	repos := make(map[string]struct{})

	for _, event := range events {
		switch event.GetType() {
		case "PushEvent", "PullRequestEvent", "IssueCommentEvent":
			if name := event.GetRepo().GetName(); name != "" {
				repos[name] = struct{}{}
			}
		case "PullRequestReviewEvent":
			summary.CodeReviews++
		}
	}

	summary.ContributedRepos = len(repos)
	return summary
}
