package api

import (
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OwnerHandler struct {
	Repository *repository.Repository
}

// @Summary List owners
// @Tags owners
// @Produce json
// @Success 200 {object} object "data: []ds.Owner, count: int"
// @Router /api/owners [get]
func (h *OwnerHandler) ListOwnersAPI(c *gin.Context) {
	owners, err := h.Repository.ListOwners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": owners, "count": len(owners)})
}

func (h *OwnerHandler) GetOwnerAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	owner, err := h.Repository.GetOwner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": owner})
}

// @Summary Create an owner
// @Tags owners
// @Accept json
// @Produce json
// @Param owner body ds.Owner true "Owner"
// @Success 201 {object} object "data: ds.Owner"
// @Failure 400 {object} object "error, detail"
// @Router /api/owners [post]
func (h *OwnerHandler) CreateOwnerAPI(c *gin.Context) {
	var owner ds.Owner
	if err := c.ShouldBind(&owner); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Repository.CreateOwner(c.Request.Context(), &owner); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": owner})
}

func (h *OwnerHandler) UpdateOwnerAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var owner ds.Owner
	if err := c.ShouldBind(&owner); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Repository.UpdateOwner(c.Request.Context(), id, &owner); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": owner})
}

// DeleteOwnerAPI - DELETE /api/owners/:id - the owner's vessels are kept without owner
func (h *OwnerHandler) DeleteOwnerAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Repository.DeleteOwner(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Owner deleted successfully"})
}

type choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OwnerCategoriesAPI - GET /api/owners/categories
func (h *OwnerHandler) OwnerCategoriesAPI(c *gin.Context) {
	out := make([]choice, 0, len(ds.OwnerCategories))
	for _, cat := range ds.OwnerCategories {
		out = append(out, choice{Value: string(cat), Label: cat.Label()})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
