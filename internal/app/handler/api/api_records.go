package api

import (
	"context"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/repository"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RecordHandler serves the dated records attached to a vessel: insurance
// coverage, inspections, documents, and engines.
type RecordHandler struct {
	Repository *repository.Repository
	Clock      Clock
}

type insuranceRequest struct {
	VesselID  int    `json:"vessel_id" form:"vessel_id" binding:"required"`
	InsurerID int    `json:"insurer_id" form:"insurer_id" binding:"required"`
	StartDate string `json:"start_date" form:"start_date" binding:"required"`
	EndDate   string `json:"end_date" form:"end_date" binding:"required"`
}

type insuranceResponse struct {
	ID          int    `json:"id"`
	VesselID    int    `json:"vessel_id"`
	VesselName  string `json:"vessel_name"`
	InsurerID   int    `json:"insurer_id"`
	InsurerName string `json:"insurer_name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
}

func newInsuranceResponse(in ds.Insurance, today time.Time) insuranceResponse {
	out := insuranceResponse{
		ID:        in.ID,
		VesselID:  in.VesselID,
		InsurerID: in.InsurerID,
		StartDate: ds.FormatDate(in.StartDate),
		EndDate:   ds.FormatDate(in.EndDate),
		Status:    ds.ClassifyDate(in.EndDate, today).Label(),
	}
	if in.Vessel != nil {
		out.VesselName = in.Vessel.Name
	}
	if in.Insurer != nil {
		out.InsurerName = in.Insurer.Name
	}
	return out
}

func (req insuranceRequest) model() (ds.Insurance, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return ds.Insurance{}, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return ds.Insurance{}, err
	}
	if time.Time(end).Before(time.Time(start)) {
		return ds.Insurance{}, fmt.Errorf("end_date is before start_date: %w", ds.ErrInvalidPayload)
	}
	return ds.Insurance{VesselID: req.VesselID, InsurerID: req.InsurerID, StartDate: start, EndDate: end}, nil
}

func (h *RecordHandler) insurances(c *gin.Context, items []ds.Insurance) {
	today := h.Clock.today()
	out := make([]insuranceResponse, 0, len(items))
	for _, in := range items {
		out = append(out, newInsuranceResponse(in, today))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

// @Summary List insurance coverage
// @Tags insurances
// @Produce json
// @Param vessel query int false "Vessel ID"
// @Success 200 {object} object "data: []insuranceResponse, count: int"
// @Router /api/insurances [get]
func (h *RecordHandler) ListInsurancesAPI(c *gin.Context) {
	vesselID, ok := queryInt(c, "vessel")
	if !ok {
		return
	}
	items, err := h.Repository.ListInsurances(c.Request.Context(), vesselID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.insurances(c, items)
}

func (h *RecordHandler) InsurancesByStatusAPI(status ds.ExpirationStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.Repository.InsurancesByStatus(c.Request.Context(), h.Clock.today(), status)
		if err != nil {
			respondError(c, err)
			return
		}
		h.insurances(c, items)
	}
}

func (h *RecordHandler) GetInsuranceAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	in, err := h.Repository.GetInsurance(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": newInsuranceResponse(in, h.Clock.today())})
}

func (h *RecordHandler) saveInsurance(c *gin.Context, id int) {
	var req insuranceRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	in, err := req.model()
	if err != nil {
		respondError(c, err)
		return
	}
	in.ID = id
	if err := h.Repository.SaveInsurance(c.Request.Context(), &in); err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": newInsuranceResponse(in, h.Clock.today())})
}

func (h *RecordHandler) CreateInsuranceAPI(c *gin.Context) {
	h.saveInsurance(c, 0)
}

func (h *RecordHandler) UpdateInsuranceAPI(c *gin.Context) {
	if id, ok := paramID(c); ok {
		h.saveInsurance(c, id)
	}
}

func (h *RecordHandler) DeleteInsuranceAPI(c *gin.Context) {
	h.deleteRecord(c, h.Repository.DeleteInsurance, "Insurance")
}

type inspectionRequest struct {
	VesselID         int    `json:"vessel_id" form:"vessel_id" binding:"required"`
	InspectionDate   string `json:"inspection_date" form:"inspection_date" binding:"required"`
	PermitExpiration string `json:"permit_expiration" form:"permit_expiration" binding:"required"`
	Location         string `json:"location" form:"location"`
}

type inspectionResponse struct {
	ID               int    `json:"id"`
	VesselID         int    `json:"vessel_id"`
	VesselName       string `json:"vessel_name"`
	InspectionDate   string `json:"inspection_date"`
	PermitExpiration string `json:"permit_expiration"`
	Location         string `json:"location"`
	Status           string `json:"status"`
}

func newInspectionResponse(v ds.Inspection, today time.Time) inspectionResponse {
	out := inspectionResponse{
		ID:               v.ID,
		VesselID:         v.VesselID,
		InspectionDate:   ds.FormatDate(v.InspectionDate),
		PermitExpiration: ds.FormatDate(v.PermitExpiration),
		Location:         v.Location,
		Status:           ds.ClassifyDate(v.PermitExpiration, today).Label(),
	}
	if v.Vessel != nil {
		out.VesselName = v.Vessel.Name
	}
	return out
}

func (h *RecordHandler) inspections(c *gin.Context, items []ds.Inspection) {
	today := h.Clock.today()
	out := make([]inspectionResponse, 0, len(items))
	for _, v := range items {
		out = append(out, newInspectionResponse(v, today))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

func (h *RecordHandler) ListInspectionsAPI(c *gin.Context) {
	vesselID, ok := queryInt(c, "vessel")
	if !ok {
		return
	}
	items, err := h.Repository.ListInspections(c.Request.Context(), vesselID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.inspections(c, items)
}

func (h *RecordHandler) InspectionsByStatusAPI(status ds.ExpirationStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.Repository.InspectionsByStatus(c.Request.Context(), h.Clock.today(), status)
		if err != nil {
			respondError(c, err)
			return
		}
		h.inspections(c, items)
	}
}

func (h *RecordHandler) GetInspectionAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	v, err := h.Repository.GetInspection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": newInspectionResponse(v, h.Clock.today())})
}

func (h *RecordHandler) saveInspection(c *gin.Context, id int) {
	var req inspectionRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	date, err := parseDate("inspection_date", req.InspectionDate)
	if err != nil {
		respondError(c, err)
		return
	}
	expires, err := parseDate("permit_expiration", req.PermitExpiration)
	if err != nil {
		respondError(c, err)
		return
	}
	v := ds.Inspection{ID: id, VesselID: req.VesselID, InspectionDate: date, PermitExpiration: expires, Location: req.Location}
	if err := h.Repository.SaveInspection(c.Request.Context(), &v); err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": newInspectionResponse(v, h.Clock.today())})
}

func (h *RecordHandler) CreateInspectionAPI(c *gin.Context) {
	h.saveInspection(c, 0)
}

func (h *RecordHandler) UpdateInspectionAPI(c *gin.Context) {
	if id, ok := paramID(c); ok {
		h.saveInspection(c, id)
	}
}

func (h *RecordHandler) DeleteInspectionAPI(c *gin.Context) {
	h.deleteRecord(c, h.Repository.DeleteInspection, "Inspection")
}

type documentRequest struct {
	VesselID       int    `json:"vessel_id" form:"vessel_id" binding:"required"`
	DocType        string `json:"doc_type" form:"doc_type" binding:"required"`
	IssueDate      string `json:"issue_date" form:"issue_date" binding:"required"`
	ExpirationDate string `json:"expiration_date" form:"expiration_date"`
}

type documentResponse struct {
	ID             int     `json:"id"`
	VesselID       int     `json:"vessel_id"`
	VesselName     string  `json:"vessel_name"`
	DocType        string  `json:"doc_type"`
	IssueDate      string  `json:"issue_date"`
	ExpirationDate *string `json:"expiration_date"`
	Status         string  `json:"status"`
}

func newDocumentResponse(d ds.Document, today time.Time) documentResponse {
	out := documentResponse{
		ID:        d.ID,
		VesselID:  d.VesselID,
		DocType:   d.DocType,
		IssueDate: ds.FormatDate(d.IssueDate),
		Status:    ds.ClassifyOptionalDate(d.ExpirationDate, today).Label(),
	}
	if d.ExpirationDate != nil {
		exp := ds.FormatDate(*d.ExpirationDate)
		out.ExpirationDate = &exp
	}
	if d.Vessel != nil {
		out.VesselName = d.Vessel.Name
	}
	return out
}

func (h *RecordHandler) documents(c *gin.Context, items []ds.Document) {
	today := h.Clock.today()
	out := make([]documentResponse, 0, len(items))
	for _, d := range items {
		out = append(out, newDocumentResponse(d, today))
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

func (h *RecordHandler) ListDocumentsAPI(c *gin.Context) {
	vesselID, ok := queryInt(c, "vessel")
	if !ok {
		return
	}
	items, err := h.Repository.ListDocuments(c.Request.Context(), vesselID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.documents(c, items)
}

func (h *RecordHandler) DocumentsByStatusAPI(status ds.ExpirationStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.Repository.DocumentsByStatus(c.Request.Context(), h.Clock.today(), status)
		if err != nil {
			respondError(c, err)
			return
		}
		h.documents(c, items)
	}
}

func (h *RecordHandler) GetDocumentAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, err := h.Repository.GetDocument(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": newDocumentResponse(d, h.Clock.today())})
}

func (h *RecordHandler) saveDocument(c *gin.Context, id int) {
	var req documentRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	issued, err := parseDate("issue_date", req.IssueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	d := ds.Document{ID: id, VesselID: req.VesselID, DocType: req.DocType, IssueDate: issued}
	if req.ExpirationDate != "" {
		exp, err := parseDate("expiration_date", req.ExpirationDate)
		if err != nil {
			respondError(c, err)
			return
		}
		d.ExpirationDate = &exp
	}
	if err := h.Repository.SaveDocument(c.Request.Context(), &d); err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": newDocumentResponse(d, h.Clock.today())})
}

func (h *RecordHandler) CreateDocumentAPI(c *gin.Context) {
	h.saveDocument(c, 0)
}

func (h *RecordHandler) UpdateDocumentAPI(c *gin.Context) {
	if id, ok := paramID(c); ok {
		h.saveDocument(c, id)
	}
}

func (h *RecordHandler) DeleteDocumentAPI(c *gin.Context) {
	h.deleteRecord(c, h.Repository.DeleteDocument, "Document")
}

// Engines carry no dates, the model is bound directly.

func (h *RecordHandler) ListEnginesAPI(c *gin.Context) {
	vesselID, ok := queryInt(c, "vessel")
	if !ok {
		return
	}
	engines, err := h.Repository.ListEngines(c.Request.Context(), vesselID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": engines, "count": len(engines)})
}

func (h *RecordHandler) GetEngineAPI(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	engine, err := h.Repository.GetEngine(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": engine})
}

func (h *RecordHandler) saveEngine(c *gin.Context, id int) {
	var engine ds.Engine
	if err := c.ShouldBind(&engine); err != nil {
		bindError(c, err)
		return
	}
	engine.ID = id
	if err := h.Repository.SaveEngine(c.Request.Context(), &engine); err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": engine})
}

func (h *RecordHandler) CreateEngineAPI(c *gin.Context) {
	h.saveEngine(c, 0)
}

func (h *RecordHandler) UpdateEngineAPI(c *gin.Context) {
	if id, ok := paramID(c); ok {
		h.saveEngine(c, id)
	}
}

func (h *RecordHandler) DeleteEngineAPI(c *gin.Context) {
	h.deleteRecord(c, h.Repository.DeleteEngine, "Engine")
}

func (h *RecordHandler) deleteRecord(c *gin.Context, del func(ctx context.Context, id int) error, what string) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": what + " deleted successfully"})
}
