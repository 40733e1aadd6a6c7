package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/services"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/config"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/logger"
)

// One-shot harvester. Runs a search, aggregates candidate metrics and
// writes the CSV and XLSX exports without touching the database.
func main() {
	query := flag.String("query", "", "GitHub user search query (defaults to SEARCH_QUERY)")
	pages := flag.Int("pages", 0, "number of search pages to walk (defaults to SEARCH_PAGES)")
	output := flag.String("output", "", "base name for export files without extension")
	flag.Parse()

	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init()

	if *query == "" {
		*query = cfg.Harvest.SearchQuery
	}
	if *pages <= 0 {
		*pages = cfg.Harvest.SearchPages
	}
	if *output == "" {
		*output = "software_engineers"
	}

	ring, err := services.NewTokenRing(cfg.GitHub.Tokens)
	if err != nil {
		log.Fatalf("Failed to initialize token ring: %v", err)
	}
	apiService := services.NewGitHubAPIService(ring, cfg.GitHub.BaseURL)
	harvester := services.NewHarvesterService(apiService)
	exporter := services.NewExportService(cfg.Harvest.OutputDir)

	records, err := harvester.Run(context.Background(), services.HarvestOptions{
		Query: *query,
		Sort:  cfg.Harvest.SearchSort,
		Pages: *pages,
	})
	if errors.Is(err, services.ErrTokensExhausted) {
		log.Printf("All tokens exhausted, keeping %d partial records", len(records))
	} else if err != nil {
		log.Fatalf("Harvest failed: %v", err)
	}

	if len(records) == 0 {
		log.Fatal("Harvest produced no candidates")
	}

	csvPath, err := exporter.WriteCSV(records, *output+".csv")
	if err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}
	xlsxPath, err := exporter.WriteXLSX(records, *output+".xlsx")
	if err != nil {
		log.Fatalf("Failed to write XLSX: %v", err)
	}

	log.Printf("Harvested %d candidates", len(records))
	log.Printf("Wrote %s and %s", csvPath, xlsxPath)
}
