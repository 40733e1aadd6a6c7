package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/workers"
)

// HealthHandler reports service liveness and worker state
type HealthHandler struct {
	workerManager *workers.WorkerManager
}

func NewHealthHandler(workerManager *workers.WorkerManager) *HealthHandler {
	return &HealthHandler{workerManager: workerManager}
}

// Health returns service status and per-worker running state
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"workers": h.workerManager.GetWorkerStatus(),
	})
}
