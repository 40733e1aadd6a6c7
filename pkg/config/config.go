package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GitHub   GitHubConfig
	Harvest  HarvestConfig
	SMTP     SMTPConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	Tokens  []string
	BaseURL string
}

type HarvestConfig struct {
	SearchQuery  string
	SearchSort   string
	SearchPages  int
	OutputDir    string
	CorpusDir    string
	CronSchedule string
}

type SMTPConfig struct {
	Host             string
	Port             int
	Username         string
	Password         string
	From             string
	HREmail          string
	QuestionnaireURL string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Mode: getEnv("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./recruiter.db"),
		},
		GitHub: GitHubConfig{
			Tokens:  getEnvAsList("GITHUB_TOKENS"),
			BaseURL: getEnv("GITHUB_API_URL", ""),
		},
		Harvest: HarvestConfig{
			SearchQuery:  getEnv("SEARCH_QUERY", "data science"),
			SearchSort:   getEnv("SEARCH_SORT", "repositories"),
			SearchPages:  getEnvAsInt("SEARCH_PAGES", 1),
			OutputDir:    getEnv("OUTPUT_DIR", "./output"),
			CorpusDir:    getEnv("CORPUS_DIR", "./corpus"),
			CronSchedule: getEnv("HARVEST_CRON", ""),
		},
		SMTP: SMTPConfig{
			Host:             getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:             getEnvAsInt("SMTP_PORT", 587),
			Username:         getEnv("SMTP_USERNAME", ""),
			Password:         getEnv("SMTP_PASSWORD", ""),
			From:             getEnv("EMAIL_FROM", ""),
			HREmail:          getEnv("HR_EMAIL", ""),
			QuestionnaireURL: getEnv("QUESTIONNAIRE_URL", ""),
		},
	}

	if AppConfig.Harvest.SearchPages < 1 {
		return fmt.Errorf("SEARCH_PAGES must be a positive number, got %d", AppConfig.Harvest.SearchPages)
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsList gets a comma-separated environment variable as a list of trimmed values
func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
