package handler

import (
	"net/http"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/gin-gonic/gin"
)

// SlotHandler serves the read-only slot catalog page
type SlotHandler struct {
	BaseHandler
	slots inventory.SlotRepository
}

// NewSlotHandler creates a new SlotHandler
func NewSlotHandler(views PageRenderer, slots inventory.SlotRepository) *SlotHandler {
	return &SlotHandler{
		BaseHandler: BaseHandler{views: views},
		slots:       slots,
	}
}

// RegisterRoutes registers the slot routes
func (h *SlotHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.List)
}

// List renders the slot catalog
func (h *SlotHandler) List(c *gin.Context) {
	slots, err := h.slots.FindAll(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.views.Render(c, http.StatusOK, "slots", inventoryapp.ViewData{
		"Slots": slots,
	})
}
