package pkg

import (
	"context"
	"errors"
	"fleet_registry/internal/app/config"
	"fleet_registry/internal/app/handler"
	"fleet_registry/internal/app/handler/middleware"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const shutdownTimeout = 10 * time.Second

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.Handler
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.Handler) *Application {
	return &Application{
		Config:  c,
		Router:  r,
		Handler: h,
	}
}

// Setup installs middleware and every route. RunApp calls it.
func (a *Application) Setup() {
	a.Router.Use(
		otelgin.Middleware(a.Config.ServiceName),
		middleware.RequestLogger(),
		middleware.Metrics(),
		corsMiddleware(a.Config.CorsOrigins),
	)
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	a.Handler.SetupRoutes(a.Router)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	return cors.New(cfg)
}

// RunApp serves until SIGINT or SIGTERM, then drains in-flight requests.
func (a *Application) RunApp() {
	logrus.Info("Server start up")
	shutdownTracing, err := InitTracing(context.Background(), a.Config.ServiceName, a.Config.TracingEndpoint)
	if err != nil {
		logrus.Warnf("tracing disabled: %v", err)
		shutdownTracing = func(context.Context) error { return nil }
	}

	a.Setup()

	addr := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.MethodOverride(a.Router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logrus.Errorf("tracer shutdown: %v", err)
	}
	logrus.Info("Server down")
}
