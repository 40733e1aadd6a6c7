package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/logger"
)

// exportColumns is the fixed output schema. Order and names are part of the
// downstream contract and must not change.
var exportColumns = []string{
	"username", "email", "user_url", "avatar_url", "public_repos", "followers",
	"total_stars", "total_forks", "total_pr_merged", "total_issues_opened", "total_issues_closed",
	"total_commits_last_year", "total_commits_all_time", "avg_commits_per_month",
	"avg_issue_close_time", "contributed_repos", "code_reviews_count",
}

const exportSheetName = "Candidates"

// ExportService writes harvested records as tabular artifacts for the
// downstream dashboard import
type ExportService struct {
	outputDir string
}

// NewExportService creates an ExportService writing into outputDir
func NewExportService(outputDir string) *ExportService {
	return &ExportService{outputDir: outputDir}
}

// WriteCSV writes the records as UTF-8 CSV and returns the file path
func (s *ExportService) WriteCSV(records []*models.HarvestRecord, filename string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(exportColumns); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		if err := writer.Write(recordRow(record)); err != nil {
			return "", fmt.Errorf("failed to write record for %s: %w", record.Username, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	logger.WithField("path", path).Infof("Wrote %d records to CSV", len(records))
	return path, nil
}

// WriteXLSX writes the records as a spreadsheet with the same column schema
func (s *ExportService) WriteXLSX(records []*models.HarvestRecord, filename string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return "", err
	}

	header := make([]interface{}, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return "", err
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}

		row := recordRow(record)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
			return "", err
		}
	}

	path := filepath.Join(s.outputDir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save spreadsheet: %w", err)
	}

	logger.WithField("path", path).Infof("Wrote %d records to XLSX", len(records))
	return path, nil
}

// recordRow flattens a record into the fixed column order
func recordRow(r *models.HarvestRecord) []string {
	return []string{
		r.Username,
		r.Email,
		r.UserURL,
		r.AvatarURL,
		strconv.Itoa(r.PublicRepos),
		strconv.Itoa(r.Followers),
		strconv.Itoa(r.TotalStars),
		strconv.Itoa(r.TotalForks),
		strconv.Itoa(r.TotalPRsMerged),
		strconv.Itoa(r.TotalIssuesOpened),
		strconv.Itoa(r.TotalIssuesClosed),
		strconv.Itoa(r.TotalCommitsLastYear),
		strconv.Itoa(r.TotalCommitsAllTime),
		strconv.FormatFloat(r.AvgCommitsPerMonth, 'f', -1, 64),
		strconv.FormatFloat(r.AvgIssueCloseTime, 'f', -1, 64),
		strconv.Itoa(r.ContributedRepos),
		strconv.Itoa(r.CodeReviewsCount),
	}
}
