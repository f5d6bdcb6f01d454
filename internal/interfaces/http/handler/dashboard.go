package handler

import (
	"net/http"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the landing page with the inventory counters
type DashboardHandler struct {
	BaseHandler
	dashboard *inventoryapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(views PageRenderer, dashboard *inventoryapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: BaseHandler{views: views},
		dashboard:   dashboard,
	}
}

// RegisterRoutes registers the dashboard route
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Show)
}

// Show renders the dashboard
func (h *DashboardHandler) Show(c *gin.Context) {
	counters, err := h.dashboard.Counters(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "dashboard", inventoryapp.ViewData{
		"Counters": counters,
	})
}
