package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/models"
	"github.com/Senthuron/Gym-Backend/internal/services"
)

// HealthHandler reports the health of the service's subsystems.
type HealthHandler struct {
	hub   *services.Hub
	queue services.TaskQueue
}

func NewHealthHandler(hub *services.Hub, queue services.TaskQueue) *HealthHandler {
	return &HealthHandler{hub: hub, queue: queue}
}

// CheckHealth returns the health status of all subsystems.
// GET /api/health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := models.GetClient().Ping(ctx, nil); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	queueMode := "sync"
	if h.queue != nil && h.queue.IsAsync() {
		queueMode = "async (Redis)"
	}

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "gym-backend",
		"components": gin.H{
			"database":   dbStatus,
			"queue_mode": queueMode,
			"ws_clients": h.hub.ClientCount(),
		},
	})
}
