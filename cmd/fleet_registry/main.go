package main

// go run cmd/fleet_registry/main.go

import (
	"context"
	"fleet_registry/internal/app/config"
	"fleet_registry/internal/app/dsn"
	"fleet_registry/internal/app/handler"
	"fleet_registry/internal/app/pkg"
	"fleet_registry/internal/app/repository"
	"fleet_registry/internal/app/storage"
	"fleet_registry/internal/app/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	_ "fleet_registry/docs" // Swagger docs
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	blobs, err := storage.NewMinioStore(context.Background(), conf.Minio)
	if err != nil {
		logrus.Fatalf("error initializing blob store: %v", err)
	}

	rdb := utils.NewRedisClient(conf.RedisEndpoint, conf.RedisPassword)
	if rdb == nil {
		logrus.Warn("REDIS_ENDPOINT not set, sessions are not revocable")
	}

	rep, errRep := repository.New(dsn.FromEnv(), rdb, blobs, conf.JwtKey)
	if errRep != nil {
		logrus.Fatalf("error initializing repository: %v", errRep)
	}

	hand := handler.NewHandler(rep, handler.Options{
		AuthEnabled: conf.AuthEnabled,
		LogoPath:    conf.LogoPath,
	})

	application := pkg.NewApp(conf, router, hand)
	application.RunApp()
}
