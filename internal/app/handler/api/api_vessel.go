package api

import (
	"bytes"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/export"
	"fleet_registry/internal/app/handler/middleware"
	"fleet_registry/internal/app/repository"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VesselHandler struct {
	Repository *repository.Repository
	Clock      Clock
	LogoPath   string
}

type vesselRequest struct {
	Name         string          `json:"name" form:"name" binding:"required"`
	Registration string          `json:"registration" form:"registration" binding:"required"`
	IMO          string          `json:"imo" form:"imo"`
	MMSI         string          `json:"mmsi" form:"mmsi"`
	VesselType   string          `json:"vessel_type" form:"vessel_type"`
	BuildPlace   string          `json:"build_place" form:"build_place"`
	BuildYear    *int            `json:"build_year" form:"build_year" binding:"omitempty,min=1800"`
	HullMaterial ds.HullMaterial `json:"hull_material" form:"hull_material"`
	Passengers   int             `json:"passengers" form:"passengers" binding:"min=0"`
	Crew         int             `json:"crew" form:"crew" binding:"min=0"`
	OwnerID      *int            `json:"owner_id" form:"owner_id"`
	ActivityIDs  []int           `json:"activity_ids" form:"activity_ids"`
}

func (req vesselRequest) model() ds.Vessel {
	return ds.Vessel{
		Name:         req.Name,
		Registration: req.Registration,
		IMO:          req.IMO,
		MMSI:         req.MMSI,
		VesselType:   req.VesselType,
		BuildPlace:   req.BuildPlace,
		BuildYear:    req.BuildYear,
		HullMaterial: req.HullMaterial,
		Passengers:   req.Passengers,
		Crew:         req.Crew,
		OwnerID:      req.OwnerID,
	}
}

type vesselResponse struct {
	ds.Vessel
	PhotoURL string `json:"photo_url"`
}

func (h *VesselHandler) response(c *gin.Context, v ds.Vessel) vesselResponse {
	out := vesselResponse{Vessel: v}
	if v.PhotoRef != "" {
		url, err := h.Repository.Blobs().URL(v.PhotoRef)
		if err != nil {
			middleware.Logger(c).Warnf("photo of vessel %d: %v", v.ID, err)
		}
		out.PhotoURL = url
	}
	return out
}

func (h *VesselHandler) filter(c *gin.Context) (repository.VesselFilter, error) {
	f := repository.VesselFilter{
		Search: c.Query("search"),
		Types:  queryStrings(c, "type"),
	}
	var err error
	if f.OwnerIDs, err = queryInts(c, "owner"); err != nil {
		return f, err
	}
	if f.ActivityIDs, err = queryInts(c, "activity"); err != nil {
		return f, err
	}
	for name, dst := range map[string]**int{"year_min": &f.YearMin, "year_max": &f.YearMax} {
		if raw := c.Query(name); raw != "" {
			y, err := strconv.Atoi(raw)
			if err != nil {
				return f, fmt.Errorf("invalid %s %q: %w", name, raw, ds.ErrInvalidPayload)
			}
			*dst = &y
		}
	}
	return f, nil
}

// @Summary List vessels
// @Description Filter by search text, vessel type, owner, activity and build year range
// @Tags vessels
// @Produce json
// @Param search query string false "Free text"
// @Param type query string false "Vessel types, comma separated"
// @Param owner query string false "Owner IDs, comma separated"
// @Param activity query string false "Activity IDs, comma separated"
// @Param year_min query int false "Build year lower bound"
// @Param year_max query int false "Build year upper bound"
// @Success 200 {object} object "data: []vesselResponse, count: int"
// @Router /api/vessels [get]
func (h *VesselHandler) ListVesselsAPI(c *gin.Context) {
	f, err := h.filter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	vessels, err := h.Repository.ListVessels(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]vesselResponse, 0, len(vessels))
	for _, v := range vessels {
		out = append(out, h.response(c, v))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

func (h *VesselHandler) GetVesselAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	vessel, err := h.Repository.GetVessel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.response(c, vessel)})
}

// @Summary Create a vessel
// @Description JSON or multipart form; a multipart "photo", "file" or "image" part becomes the vessel photo
// @Tags vessels
// @Accept json,mpfd
// @Produce json
// @Param vessel body vesselRequest true "Vessel"
// @Success 201 {object} object "data: vesselResponse"
// @Failure 400 {object} object "error, detail"
// @Failure 409 {object} object "error: duplicate registration"
// @Router /api/vessels [post]
func (h *VesselHandler) CreateVesselAPI(c *gin.Context) {
	var req vesselRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	upload, file, err := formUpload(c, photoParts...)
	if err != nil {
		respondError(c, err)
		return
	}
	if upload != nil {
		defer file.Close()
		if upload.Size <= 0 {
			respondError(c, fmt.Errorf("empty photo: %w", ds.ErrInvalidPayload))
			return
		}
	}
	ctx := c.Request.Context()
	vessel := req.model()
	activityIDs := req.ActivityIDs
	if activityIDs == nil {
		activityIDs = []int{}
	}
	if err := h.Repository.CreateVessel(ctx, &vessel, activityIDs); err != nil {
		respondError(c, err)
		return
	}
	if upload != nil {
		if _, err := h.Repository.SetVesselPhoto(ctx, vessel.ID, upload); err != nil {
			// a failed create leaves no vessel behind
			if derr := h.Repository.DeleteVessel(ctx, vessel.ID); derr != nil {
				middleware.Logger(c).Errorf("rollback of vessel %d: %v", vessel.ID, derr)
			}
			respondError(c, err)
			return
		}
	}
	created, err := h.Repository.GetVessel(ctx, vessel.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": h.response(c, created)})
}

func (h *VesselHandler) UpdateVesselAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req vesselRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	ctx := c.Request.Context()
	vessel := req.model()
	if err := h.Repository.UpdateVessel(ctx, id, &vessel, req.ActivityIDs); err != nil {
		respondError(c, err)
		return
	}
	if ok := h.attachPhoto(c, id); !ok {
		return
	}
	updated, err := h.Repository.GetVessel(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.response(c, updated)})
}

// attachPhoto stores an optional photo part sent with a vessel form.
// photoParts are the multipart fields accepted as a vessel photo, in order.
var photoParts = []string{"photo", "image", "file"}

func (h *VesselHandler) attachPhoto(c *gin.Context, id int) bool {
	upload, file, err := formUpload(c, photoParts...)
	if err != nil {
		respondError(c, err)
		return false
	}
	if upload == nil {
		return true
	}
	defer file.Close()
	if _, err := h.Repository.SetVesselPhoto(c.Request.Context(), id, upload); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// DeleteVesselAPI - DELETE /api/vessels/:id - removes every dependent record and stored file
func (h *VesselHandler) DeleteVesselAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Repository.DeleteVessel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vessel deleted successfully"})
}

// @Summary Upload the vessel photo
// @Tags vessels
// @Accept mpfd
// @Produce json
// @Param id path int true "Vessel ID"
// @Param file formData file true "Photo"
// @Success 200 {object} object "data: {vessel_id, photo_url}"
// @Failure 400 {object} object "error, detail"
// @Failure 404 {object} object "error: vessel not found"
// @Router /api/vessels/{id}/photo [post]
func (h *VesselHandler) UploadPhotoAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	upload, file, err := formUpload(c, "file", "image", "photo")
	if err != nil {
		respondError(c, err)
		return
	}
	if upload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided", "detail": "send the photo as a multipart \"file\" or \"image\" part"})
		return
	}
	defer file.Close()

	ref, err := h.Repository.SetVesselPhoto(c.Request.Context(), id, upload)
	if err != nil {
		respondError(c, err)
		return
	}
	url, err := h.Repository.Blobs().URL(ref)
	if err != nil {
		respondError(c, fmt.Errorf("%w: %v", ds.ErrStorage, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"vessel_id": id, "photo_url": url}})
}

func (h *VesselHandler) HullMaterialsAPI(c *gin.Context) {
	out := make([]choice, 0, len(ds.HullMaterials))
	for _, m := range ds.HullMaterials {
		out = append(out, choice{Value: string(m), Label: string(m)})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// @Summary Export every vessel as CSV
// @Tags vessels
// @Produce text/csv
// @Success 200 {file} file
// @Router /api/vessels/export-csv [get]
func (h *VesselHandler) ExportCSVAPI(c *gin.Context) {
	h.exportCSV(c, repository.VesselFilter{}, "complete")
}

// ExportCSVFilteredAPI - GET /api/vessels/export-csv-filtered - same filters as the list
func (h *VesselHandler) ExportCSVFilteredAPI(c *gin.Context) {
	f, err := h.filter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	h.exportCSV(c, f, "filtered")
}

func (h *VesselHandler) exportCSV(c *gin.Context, f repository.VesselFilter, prefix string) {
	vessels, err := h.Repository.ListVesselsForExport(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	exporter := export.NewExporter(h.Repository.Blobs().URL, middleware.Logger(c))
	var buf bytes.Buffer
	if err := exporter.WriteCSV(&buf, vessels); err != nil {
		respondError(c, fmt.Errorf("csv export: %v: %w", err, ds.ErrRendering))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(prefix, h.Clock.now())))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// @Summary Export one vessel sheet as PDF
// @Tags vessels
// @Produce application/pdf
// @Param id path int true "Vessel ID"
// @Success 200 {file} file
// @Failure 404 {object} object "error: vessel not found"
// @Failure 500 {object} object "error: rendering failure"
// @Router /api/vessels/{id}/export-one-pdf [get]
func (h *VesselHandler) ExportOnePDFAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	vessel, err := h.Repository.GetVessel(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	now := h.Clock.now()
	data, err := export.RenderSheet(ctx, vessel, export.SheetOptions{
		Blobs:    h.Repository.Blobs(),
		LogoPath: h.LogoPath,
		Today:    now,
		Log:      middleware.Logger(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.SheetFilename(vessel, now)))
	c.Data(http.StatusOK, "application/pdf", data)
}
