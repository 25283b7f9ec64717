package handler

import (
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/handler/api"
	"fleet_registry/internal/app/handler/middleware"
	"fleet_registry/internal/app/repository"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Options struct {
	AuthEnabled bool
	LogoPath    string
	Clock       api.Clock
}

type Handler struct {
	Repository       *repository.Repository
	Options          Options
	OwnerAPIHandler  *api.OwnerHandler
	CatalogHandler   *api.CatalogHandler
	RecordAPIHandler *api.RecordHandler
	VesselAPIHandler *api.VesselHandler
	MetaAPIHandler   *api.MetaFieldHandler
	AlertAPIHandler  *api.AlertHandler
	UserAPIHandler   *api.UserHandler
}

func NewHandler(rep *repository.Repository, opts Options) *Handler {
	return &Handler{
		Repository:       rep,
		Options:          opts,
		OwnerAPIHandler:  &api.OwnerHandler{Repository: rep},
		CatalogHandler:   &api.CatalogHandler{Repository: rep},
		RecordAPIHandler: &api.RecordHandler{Repository: rep, Clock: opts.Clock},
		VesselAPIHandler: &api.VesselHandler{Repository: rep, Clock: opts.Clock, LogoPath: opts.LogoPath},
		MetaAPIHandler:   &api.MetaFieldHandler{Repository: rep},
		AlertAPIHandler:  &api.AlertHandler{Repository: rep, Clock: opts.Clock},
		UserAPIHandler:   &api.UserHandler{Repository: rep},
	}
}

func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.health)

	auth := middleware.AuthMiddleware(h.Repository)
	apiGroup := router.Group("/api", middleware.WriteGuard(h.Options.AuthEnabled, auth))
	{
		owners := apiGroup.Group("/owners")
		owners.GET("", h.OwnerAPIHandler.ListOwnersAPI)
		owners.GET("/categories", h.OwnerAPIHandler.OwnerCategoriesAPI)
		owners.GET("/:id", h.OwnerAPIHandler.GetOwnerAPI)
		owners.POST("", h.OwnerAPIHandler.CreateOwnerAPI)
		owners.PUT("/:id", h.OwnerAPIHandler.UpdateOwnerAPI)
		owners.DELETE("/:id", h.OwnerAPIHandler.DeleteOwnerAPI)

		activities := apiGroup.Group("/activities")
		activities.GET("", h.CatalogHandler.ListActivitiesAPI)
		activities.GET("/:id", h.CatalogHandler.GetActivityAPI)
		activities.POST("", h.CatalogHandler.CreateActivityAPI)
		activities.PUT("/:id", h.CatalogHandler.UpdateActivityAPI)
		activities.DELETE("/:id", h.CatalogHandler.DeleteActivityAPI)

		insurers := apiGroup.Group("/insurers")
		insurers.GET("", h.CatalogHandler.ListInsurersAPI)
		insurers.GET("/:id", h.CatalogHandler.GetInsurerAPI)
		insurers.POST("", h.CatalogHandler.CreateInsurerAPI)
		insurers.PUT("/:id", h.CatalogHandler.UpdateInsurerAPI)
		insurers.DELETE("/:id", h.CatalogHandler.DeleteInsurerAPI)

		rec := h.RecordAPIHandler
		insurances := apiGroup.Group("/insurances")
		insurances.GET("", rec.ListInsurancesAPI)
		insurances.GET("/expired", rec.InsurancesByStatusAPI(ds.StatusExpired))
		insurances.GET("/expiring-soon", rec.InsurancesByStatusAPI(ds.StatusSoon))
		insurances.GET("/:id", rec.GetInsuranceAPI)
		insurances.POST("", rec.CreateInsuranceAPI)
		insurances.PUT("/:id", rec.UpdateInsuranceAPI)
		insurances.DELETE("/:id", rec.DeleteInsuranceAPI)

		inspections := apiGroup.Group("/inspections")
		inspections.GET("", rec.ListInspectionsAPI)
		inspections.GET("/expired", rec.InspectionsByStatusAPI(ds.StatusExpired))
		inspections.GET("/expiring-soon", rec.InspectionsByStatusAPI(ds.StatusSoon))
		inspections.GET("/:id", rec.GetInspectionAPI)
		inspections.POST("", rec.CreateInspectionAPI)
		inspections.PUT("/:id", rec.UpdateInspectionAPI)
		inspections.DELETE("/:id", rec.DeleteInspectionAPI)

		documents := apiGroup.Group("/documents")
		documents.GET("", rec.ListDocumentsAPI)
		documents.GET("/expired", rec.DocumentsByStatusAPI(ds.StatusExpired))
		documents.GET("/expiring-soon", rec.DocumentsByStatusAPI(ds.StatusSoon))
		documents.GET("/:id", rec.GetDocumentAPI)
		documents.POST("", rec.CreateDocumentAPI)
		documents.PUT("/:id", rec.UpdateDocumentAPI)
		documents.DELETE("/:id", rec.DeleteDocumentAPI)

		engines := apiGroup.Group("/engines")
		engines.GET("", rec.ListEnginesAPI)
		engines.GET("/:id", rec.GetEngineAPI)
		engines.POST("", rec.CreateEngineAPI)
		engines.PUT("/:id", rec.UpdateEngineAPI)
		engines.DELETE("/:id", rec.DeleteEngineAPI)

		vessels := apiGroup.Group("/vessels")
		vessels.GET("", h.VesselAPIHandler.ListVesselsAPI)
		vessels.GET("/hull-materials", h.VesselAPIHandler.HullMaterialsAPI)
		vessels.GET("/export-csv", h.VesselAPIHandler.ExportCSVAPI)
		vessels.GET("/export-csv-filtered", h.VesselAPIHandler.ExportCSVFilteredAPI)
		vessels.GET("/:id", h.VesselAPIHandler.GetVesselAPI)
		vessels.GET("/:id/export-one-pdf", h.VesselAPIHandler.ExportOnePDFAPI)
		vessels.POST("", h.VesselAPIHandler.CreateVesselAPI)
		vessels.POST("/:id/photo", h.VesselAPIHandler.UploadPhotoAPI)
		vessels.PUT("/:id", h.VesselAPIHandler.UpdateVesselAPI)
		vessels.DELETE("/:id", h.VesselAPIHandler.DeleteVesselAPI)

		metadata := apiGroup.Group("/metadata")
		metadata.GET("", h.MetaAPIHandler.ListMetaFieldsAPI)
		metadata.GET("/kinds", h.MetaAPIHandler.MetaKindsAPI)
		metadata.GET("/:id", h.MetaAPIHandler.GetMetaFieldAPI)
		metadata.GET("/:id/download", h.MetaAPIHandler.DownloadMetaFieldAPI)
		metadata.POST("", h.MetaAPIHandler.CreateMetaFieldAPI)
		metadata.PUT("/:id", h.MetaAPIHandler.UpdateMetaFieldAPI)
		metadata.DELETE("/:id", h.MetaAPIHandler.DeleteMetaFieldAPI)

		apiGroup.GET("/alerts/summary", h.AlertAPIHandler.AlertSummaryAPI)

		users := router.Group("/api/users")
		users.POST("/register", h.UserAPIHandler.RegisterUserAPI)
		users.POST("/login", h.UserAPIHandler.LoginUserAPI)
		authGroup := users.Group("/", auth)
		{
			authGroup.GET("/profile", h.UserAPIHandler.GetUserProfileAPI)
			authGroup.POST("/logout", h.UserAPIHandler.LogoutUserAPI)
		}
	}
}

func (h *Handler) health(c *gin.Context) {
	if sqlDB, err := h.Repository.DB().DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		logrus.Warn("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
