package config

import (
	"fleet_registry/internal/app/storage"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName   string
	ServiceHost   string
	ServicePort   int
	RedisEndpoint string
	RedisPassword string
	JwtKey        string

	// AuthEnabled guards every write route with the operator JWT.
	AuthEnabled bool
	CorsOrigins []string

	// TracingEndpoint is an OTLP/HTTP collector address; empty disables tracing.
	TracingEndpoint string
	LogoPath        string
	LogLevel        string

	Minio storage.MinioConfig
}

func NewConfig() (*Config, error) {
	var err error
	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	viper.SetDefault("ServiceName", "fleet-registry")
	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Minio.Bucket", "fleet")

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using defaults")
	}

	viper.BindEnv("RedisEndpoint", "REDIS_ENDPOINT")
	viper.BindEnv("RedisPassword", "REDIS_PASSWORD")
	viper.BindEnv("JwtKey", "JWT_KEY")
	viper.BindEnv("AuthEnabled", "AUTH_ENABLED")
	viper.BindEnv("TracingEndpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	viper.BindEnv("LogoPath", "EXPORT_LOGO_PATH")
	viper.BindEnv("Minio.Endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("Minio.AccessKey", "MINIO_ACCESS_KEY")
	viper.BindEnv("Minio.SecretKey", "MINIO_SECRET_KEY")
	viper.BindEnv("Minio.Bucket", "MINIO_BUCKET")
	viper.BindEnv("Minio.UseSSL", "MINIO_USE_SSL")
	viper.BindEnv("Minio.PublicURL", "MINIO_PUBLIC_URL")

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logrus.Info("config parsed")
	return cfg, nil
}
