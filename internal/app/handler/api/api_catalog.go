package api

import (
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the activity and insurer reference lists.
type CatalogHandler struct {
	Repository *repository.Repository
}

func (h *CatalogHandler) ListActivitiesAPI(c *gin.Context) {
	activities, err := h.Repository.ListActivities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": activities, "count": len(activities)})
}

func (h *CatalogHandler) GetActivityAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	activity, err := h.Repository.GetActivity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": activity})
}

// @Summary Create an activity
// @Tags activities
// @Accept json
// @Produce json
// @Param activity body ds.Activity true "Activity"
// @Success 201 {object} object "data: ds.Activity"
// @Failure 409 {object} object "error: duplicate name"
// @Router /api/activities [post]
func (h *CatalogHandler) CreateActivityAPI(c *gin.Context) {
	var activity ds.Activity
	if err := c.ShouldBind(&activity); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Repository.CreateActivity(c.Request.Context(), &activity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": activity})
}

func (h *CatalogHandler) UpdateActivityAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var activity ds.Activity
	if err := c.ShouldBind(&activity); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Repository.UpdateActivity(c.Request.Context(), id, &activity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": activity})
}

func (h *CatalogHandler) DeleteActivityAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Repository.DeleteActivity(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted successfully"})
}

func (h *CatalogHandler) ListInsurersAPI(c *gin.Context) {
	insurers, err := h.Repository.ListInsurers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": insurers, "count": len(insurers)})
}

func (h *CatalogHandler) GetInsurerAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	insurer, err := h.Repository.GetInsurer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": insurer})
}

func (h *CatalogHandler) CreateInsurerAPI(c *gin.Context) {
	var insurer ds.Insurer
	if err := c.ShouldBind(&insurer); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Repository.CreateInsurer(c.Request.Context(), &insurer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": insurer})
}

func (h *CatalogHandler) UpdateInsurerAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var insurer ds.Insurer
	if err := c.ShouldBind(&insurer); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Repository.UpdateInsurer(c.Request.Context(), id, &insurer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": insurer})
}

// DeleteInsurerAPI - DELETE /api/insurers/:id - coverage records go with it
func (h *CatalogHandler) DeleteInsurerAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Repository.DeleteInsurer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Insurer deleted successfully"})
}
