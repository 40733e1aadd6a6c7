package services

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/logger"
)

// Role names used by the scorer after normalization
const (
	RoleDataScience  = "Data Science"
	RoleWebDeveloper = "Web Developer"
	RoleJavaDev      = "Java Developer"
)

// roleKeywords is the scoring vocabulary per job role. Matches are
// case-insensitive and may be multi-word phrases.
var roleKeywords = map[string][]string{
	RoleDataScience: {
		"machine learning", "deep learning", "neural networks", "transformers",
		"tensorflow", "pytorch", "keras", "scikit-learn", "xgboost", "lightgbm",
		"pandas", "numpy", "scipy", "matplotlib", "seaborn", "plotly", "jupyter",
		"mlflow", "tensorboard", "cross-validation", "classification", "regression",
		"clustering", "anomaly detection", "reinforcement learning", "spark",
		"kafka", "airflow", "bigquery", "databricks", "sagemaker", "mlops",
		"natural language processing", "bert", "sentiment analysis", "word2vec",
		"topic modeling", "feature engineering", "data pipelines", "embeddings",
	},
	RoleWebDeveloper: {
		"html5", "css3", "sass", "javascript", "typescript", "react", "vue",
		"angular", "svelte", "nextjs", "nodejs", "express", "nestjs", "graphql",
		"rest api", "websocket", "webpack", "vite", "babel", "jest", "cypress",
		"playwright", "storybook", "pwa", "ssr", "responsive design", "flexbox",
		"tailwindcss", "bootstrap", "redux", "axios", "oauth2", "jwt", "cors",
		"docker", "serverless", "vercel", "netlify", "mongodb", "postgresql",
		"redis", "prisma", "nginx", "eslint", "prettier", "lazy loading",
	},
	RoleJavaDev: {
		"java 8", "java 11", "java 17", "spring boot", "spring mvc",
		"spring cloud", "spring security", "hibernate", "jpa", "jdbc",
		"junit 5", "mockito", "testcontainers", "lombok", "maven", "gradle",
		"restful api", "graphql", "grpc", "kafka", "rabbitmq", "quarkus",
		"micronaut", "jakarta ee", "thymeleaf", "swagger", "openapi", "oauth2",
		"docker", "kubernetes", "helm", "mysql", "postgresql", "mongodb",
		"cassandra", "redis", "liquibase", "flyway", "log4j2", "slf4j",
		"graalvm", "completablefuture", "virtual threads", "jackson", "protobuf",
	},
}

// CommitScoreService scores how relevant a candidate's commit messages are
// to their job role, using TF-IDF over a fixed per-role vocabulary. The
// commit-message corpus is one CSV file per username.
type CommitScoreService struct {
	corpusDir string
}

// NewCommitScoreService creates a scorer reading corpus files from corpusDir
func NewCommitScoreService(corpusDir string) *CommitScoreService {
	return &CommitScoreService{corpusDir: corpusDir}
}

// NormalizeJobRole maps free-text role names onto the scorer's canonical roles
func NormalizeJobRole(role string) string {
	lower := strings.ToLower(strings.TrimSpace(role))
	switch {
	case strings.Contains(lower, "javascript"), strings.Contains(lower, "java script"), lower == "js":
		return RoleWebDeveloper
	case strings.Contains(lower, "java"):
		return RoleJavaDev
	case strings.Contains(lower, "web"):
		return RoleWebDeveloper
	case strings.Contains(lower, "data"):
		return RoleDataScience
	default:
		return titleCase(lower)
	}
}

// ScoreCandidate computes the commit-relevance score for one username.
// A missing or empty corpus file is an error so callers can skip the
// candidate instead of recording a misleading zero.
func (s *CommitScoreService) ScoreCandidate(username, jobRole string) (float64, error) {
	role := NormalizeJobRole(jobRole)
	keywords, ok := roleKeywords[role]
	if !ok {
		return 0, fmt.Errorf("no scoring vocabulary for role %q", role)
	}

	messages, err := s.loadCommitMessages(username)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, fmt.Errorf("no commit messages for %s", username)
	}

	score := TFIDFScore(messages, keywords)
	logger.WithField("username", username).Debugf("Computed commit score %.4f", score)
	return score, nil
}

// loadCommitMessages reads the commit_message column of the user's corpus file
func (s *CommitScoreService) loadCommitMessages(username string) ([]string, error) {
	path := filepath.Join(s.corpusDir, fmt.Sprintf("%s_commit_details.csv", username))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no commit file for %s: %w", username, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read commit file for %s: %w", username, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	column := -1
	for i, name := range rows[0] {
		if name == "commit_message" {
			column = i
			break
		}
	}
	if column == -1 {
		return nil, fmt.Errorf("commit file for %s has no commit_message column", username)
	}

	var messages []string
	for _, row := range rows[1:] {
		if column >= len(row) {
			continue
		}
		if msg := strings.TrimSpace(row[column]); msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// TFIDFScore computes the summed TF-IDF weight of the vocabulary terms over
// the documents: smoothed idf, l2-normalized per-document vectors, summed
// across the whole matrix.
func TFIDFScore(documents, vocabulary []string) float64 {
	if len(documents) == 0 || len(vocabulary) == 0 {
		return 0
	}

	terms := make([]string, len(vocabulary))
	for i, term := range vocabulary {
		terms[i] = strings.ToLower(term)
	}

	// Term frequencies per document and document frequencies per term
	tf := make([][]float64, len(documents))
	df := make([]int, len(terms))
	for d, doc := range documents {
		lower := strings.ToLower(doc)
		tf[d] = make([]float64, len(terms))
		for t, term := range terms {
			count := strings.Count(lower, term)
			tf[d][t] = float64(count)
			if count > 0 {
				df[t]++
			}
		}
	}

	n := float64(len(documents))
	idf := make([]float64, len(terms))
	for t := range terms {
		idf[t] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	total := 0.0
	for d := range documents {
		var norm float64
		weights := make([]float64, len(terms))
		for t := range terms {
			weights[t] = tf[d][t] * idf[t]
			norm += weights[t] * weights[t]
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for t := range terms {
			total += weights[t] / norm
		}
	}
	return total
}

// titleCase capitalizes the first letter of each space-separated word
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
