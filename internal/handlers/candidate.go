package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/services"
)

// CandidateHandler serves the recruiter dashboard endpoints for candidates
type CandidateHandler struct {
	candidateService *services.CandidateService
	shortlistService *services.ShortlistService
}

func NewCandidateHandler(
	candidateService *services.CandidateService,
	shortlistService *services.ShortlistService,
) *CandidateHandler {
	return &CandidateHandler{
		candidateService: candidateService,
		shortlistService: shortlistService,
	}
}

// ListCandidates returns the top candidates for a role
// GET /api/candidates?role=Data+Science&sort=commit_score&limit=20
func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role query parameter is required"})
		return
	}
	role = services.NormalizeJobRole(role)

	sortBy := c.DefaultQuery("sort", "commit_score")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	candidates, err := h.candidateService.ListTopCandidates(role, sortBy, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":       role,
		"count":      len(candidates),
		"candidates": candidates,
	})
}

// GetCandidate returns one candidate by ID
// GET /api/candidates/:id
func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id := c.Param("id")

	candidate, err := h.candidateService.GetCandidateByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get candidate"})
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// ShortlistCandidate selects a candidate and sends the shortlist email
// POST /api/candidates/:id/shortlist
func (h *CandidateHandler) ShortlistCandidate(c *gin.Context) {
	id := c.Param("id")

	entry, err := h.shortlistService.ShortlistCandidate(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Candidate shortlisted",
		"shortlist": entry,
	})
}

// RejectCandidate marks a candidate rejected and sends the rejection email
// POST /api/candidates/:id/reject
func (h *CandidateHandler) RejectCandidate(c *gin.Context) {
	id := c.Param("id")

	if err := h.shortlistService.RejectCandidate(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Candidate rejected"})
}

// ListShortlisted returns the shortlist entries for a role
// GET /api/shortlists?role=Data+Science
func (h *CandidateHandler) ListShortlisted(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role query parameter is required"})
		return
	}
	role = services.NormalizeJobRole(role)

	entries, err := h.shortlistService.ListShortlisted(role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list shortlisted candidates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":       role,
		"count":      len(entries),
		"shortlists": entries,
	})
}
