package api

import (
	"fleet_registry/internal/app/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	Repository *repository.Repository
	Clock      Clock
}

// @Summary Expiration alert summary
// @Description Insurance, inspections and documents bucketed into expired, expiring within 30 days and valid
// @Tags alerts
// @Produce json
// @Success 200 {object} ds.AlertSummary
// @Failure 500 {object} object "error: message"
// @Router /api/alerts/summary [get]
func (h *AlertHandler) AlertSummaryAPI(c *gin.Context) {
	summary, err := h.Repository.AlertSummary(c.Request.Context(), h.Clock.today())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
