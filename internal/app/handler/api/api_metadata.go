package api

import (
	"encoding/json"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/handler/middleware"
	"fleet_registry/internal/app/repository"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type MetaFieldHandler struct {
	Repository *repository.Repository
}

// metaForm is bound from JSON or from the scalar parts of a multipart form.
// A JSON value may be a string, number, boolean or null.
type metaForm struct {
	VesselID  *int    `json:"vessel_id" form:"vessel_id"`
	Kind      *string `json:"kind" form:"kind"`
	Name      *string `json:"name" form:"name"`
	Value     any     `json:"value" form:"-"`
	FormValue *string `json:"-" form:"value"`
}

type metaFieldResponse struct {
	ID       int         `json:"id"`
	VesselID int         `json:"vessel_id"`
	Kind     ds.MetaKind `json:"kind"`
	Name     string      `json:"name"`
	Value    string      `json:"value"`
	HasFile  bool        `json:"has_file"`
}

func (h *MetaFieldHandler) response(c *gin.Context, m ds.MetaField) metaFieldResponse {
	value, err := m.Display(h.Repository.Blobs().URL)
	if err != nil {
		middleware.Logger(c).Warnf("metadata field %d: %v", m.ID, err)
	}
	return metaFieldResponse{
		ID:       m.ID,
		VesselID: m.VesselID,
		Kind:     m.Kind,
		Name:     m.Name,
		Value:    value,
		HasFile:  m.File() != "",
	}
}

func parseKind(raw string) (ds.MetaKind, error) {
	kind := ds.MetaKind(strings.ToUpper(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("unknown metadata kind %q: %w", raw, ds.ErrInvalidPayload)
	}
	return kind, nil
}

// bindMeta reads the form and the value. A file part wins over a scalar
// value; the repository then checks it against the declared kind. The
// returned file, if any, is closed by the caller.
func bindMeta(c *gin.Context) (metaForm, ds.MetaValue, multipart.File, error) {
	var form metaForm
	if err := c.ShouldBind(&form); err != nil {
		return form, nil, nil, fmt.Errorf("%v: %w", err, ds.ErrInvalidPayload)
	}
	upload, file, err := formUpload(c, "value", "file")
	if err != nil {
		return form, nil, nil, err
	}
	if upload != nil {
		return form, upload, file, nil
	}
	if form.FormValue != nil {
		return form, ds.TextValue(*form.FormValue), nil, nil
	}
	value, err := scalarValue(form.Value)
	return form, value, nil, err
}

// scalarValue turns a decoded JSON value into the text slot. Null stays nil.
func scalarValue(v any) (ds.MetaValue, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return ds.TextValue(v), nil
	case bool:
		return ds.TextValue(strconv.FormatBool(v)), nil
	case float64:
		return ds.TextValue(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case json.Number:
		return ds.TextValue(v.String()), nil
	}
	return nil, fmt.Errorf("value must be a string, number, boolean or null: %w", ds.ErrInvalidPayload)
}

// @Summary List metadata fields
// @Tags metadata
// @Produce json
// @Param vessel query int false "Vessel ID"
// @Param kind query string false "Kind code"
// @Success 200 {object} object "data: []metaFieldResponse, count: int"
// @Router /api/metadata [get]
func (h *MetaFieldHandler) ListMetaFieldsAPI(c *gin.Context) {
	vesselID, ok := queryInt(c, "vessel")
	if !ok {
		return
	}
	var kind *ds.MetaKind
	if raw := c.Query("kind"); raw != "" {
		k, err := parseKind(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		kind = &k
	}
	fields, err := h.Repository.ListMetaFields(c.Request.Context(), vesselID, kind)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]metaFieldResponse, 0, len(fields))
	for _, m := range fields {
		out = append(out, h.response(c, m))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

func (h *MetaFieldHandler) GetMetaFieldAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	field, err := h.Repository.GetMetaField(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.response(c, field)})
}

// @Summary Create a metadata field
// @Description FILE and IMAGE kinds take a multipart file part named "value" or "file"; other kinds take a scalar "value"
// @Tags metadata
// @Accept json,mpfd
// @Produce json
// @Param vessel_id formData int true "Vessel ID"
// @Param kind formData string true "TEXT, NUMBER, DATE, TIME, BOOLEAN, URL, FILE or IMAGE"
// @Param name formData string true "Key name, unique per vessel"
// @Param value formData string false "Scalar value or file"
// @Success 201 {object} object "data: metaFieldResponse"
// @Failure 400 {object} object "error, detail"
// @Failure 404 {object} object "error: vessel not found"
// @Failure 409 {object} object "error: duplicate name"
// @Router /api/metadata [post]
func (h *MetaFieldHandler) CreateMetaFieldAPI(c *gin.Context) {
	form, value, file, err := bindMeta(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}
	if form.VesselID == nil || form.Name == nil {
		respondError(c, fmt.Errorf("vessel_id and name are required: %w", ds.ErrInvalidPayload))
		return
	}
	kind := ds.KindText
	if form.Kind != nil {
		if kind, err = parseKind(*form.Kind); err != nil {
			respondError(c, err)
			return
		}
	}
	field, err := h.Repository.CreateMetaField(c.Request.Context(), *form.VesselID, kind, *form.Name, value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": h.response(c, field)})
}

// UpdateMetaFieldAPI - PUT /api/metadata/:id - omitted parts are kept
func (h *MetaFieldHandler) UpdateMetaFieldAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	form, value, file, err := bindMeta(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}
	patch := repository.MetaPatch{Name: form.Name, Value: value}
	if form.Kind != nil {
		kind, err := parseKind(*form.Kind)
		if err != nil {
			respondError(c, err)
			return
		}
		patch.Kind = &kind
	}
	field, err := h.Repository.UpdateMetaField(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.response(c, field)})
}

func (h *MetaFieldHandler) DeleteMetaFieldAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Repository.DeleteMetaField(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Metadata field deleted successfully"})
}

// @Summary Download URL of a file metadata field
// @Tags metadata
// @Produce json
// @Param id path int true "Metadata field ID"
// @Success 200 {object} object "data: {url}"
// @Failure 400 {object} object "error: not a file field"
// @Failure 404 {object} object "error: no file attached"
// @Router /api/metadata/{id}/download [get]
func (h *MetaFieldHandler) DownloadMetaFieldAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	url, err := h.Repository.MetaFieldDownloadURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"url": url}})
}

func (h *MetaFieldHandler) MetaKindsAPI(c *gin.Context) {
	out := make([]choice, 0, len(ds.MetaKinds))
	for _, k := range ds.MetaKinds {
		out = append(out, choice{Value: string(k), Label: kindLabels[k]})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

var kindLabels = map[ds.MetaKind]string{
	ds.KindText:    "Text",
	ds.KindNumber:  "Number",
	ds.KindDate:    "Date",
	ds.KindTime:    "Time",
	ds.KindBoolean: "Boolean",
	ds.KindURL:     "URL",
	ds.KindFile:    "File",
	ds.KindImage:   "Image",
}
