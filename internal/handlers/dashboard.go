package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Senthuron/Gym-Backend/internal/middleware"
	"github.com/Senthuron/Gym-Backend/internal/services"
	"github.com/Senthuron/Gym-Backend/pkg/response"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the admin overview counters
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// TrainerHome returns the calling trainer's overview
// GET /api/dashboard/trainer
func (h *DashboardHandler) TrainerHome(c *gin.Context) {
	stats, err := h.dashboardService.TrainerStatsFor(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// MemberHome returns the calling member's overview
// GET /api/dashboard/member
func (h *DashboardHandler) MemberHome(c *gin.Context) {
	stats, err := h.dashboardService.MemberStatsFor(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
