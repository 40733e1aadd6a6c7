package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/services"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/config"
)

// HarvestHandler exposes job creation and inspection endpoints
type HarvestHandler struct {
	jobService *services.JobService
	cfg        *config.Config
}

func NewHarvestHandler(jobService *services.JobService, cfg *config.Config) *HarvestHandler {
	return &HarvestHandler{
		jobService: jobService,
		cfg:        cfg,
	}
}

type createHarvestRequest struct {
	Role  string `json:"role" binding:"required"`
	Query string `json:"query"`
	Pages int    `json:"pages"`
}

// CreateHarvest queues a harvest job with a dependent score job
// POST /api/harvests
func (h *HarvestHandler) CreateHarvest(c *gin.Context) {
	var req createHarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}

	role := services.NormalizeJobRole(req.Role)
	query := req.Query
	if query == "" {
		query = h.cfg.Harvest.SearchQuery
	}
	pages := req.Pages
	if pages <= 0 {
		pages = h.cfg.Harvest.SearchPages
	}

	job, err := h.jobService.CreateHarvestJob(role, query, pages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create harvest job"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Harvest job queued",
		"job":     job,
	})
}

// GetJob returns a job by ID
// GET /api/jobs/:id
func (h *HarvestHandler) GetJob(c *gin.Context) {
	id := c.Param("id")

	job, err := h.jobService.GetJobByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get job"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobs returns the most recent jobs
// GET /api/jobs
func (h *HarvestHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobService.GetRecentJobs(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(jobs),
		"jobs":  jobs,
	})
}
