package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type OffersClientConfig struct {
	BaseURL           string
	RequestsPerSecond float64
	Burst             int
}

type ObservabilityConfig struct {
	Enabled      string
	OTLPEndpoint string
	ServiceName  string
}

type Config struct {
	AppEnv          string
	AppPort         string
	Redis           RedisConfig
	Postgres        PostgresConfig
	OffersClient    OffersClientConfig
	Observability   ObservabilityConfig
	CacheTTLMinutes int
	NodeID          int64
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)

	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := os.Getenv("REDIS_PASSWORD")

	pgHost := mustEnv("POSTGRES_HOST", &errs)
	pgPort := mustEnv("POSTGRES_PORT", &errs)
	pgUser := mustEnv("POSTGRES_USER", &errs)
	pgPassword := mustEnv("POSTGRES_PASSWORD", &errs)
	pgDBName := mustEnv("POSTGRES_DB", &errs)
	pgSSLMode := envOr("POSTGRES_SSLMODE", "disable")

	offersBaseURL := mustEnv("OFFERS_CLIENT_BASE_URL", &errs)
	offersRPS := envFloat("OFFERS_CLIENT_RPS", 10, &errs)
	offersBurst := envInt("OFFERS_CLIENT_BURST", 20, &errs)

	cacheTTLMinutes := envInt("CACHE_TTL_MINUTES", 5, &errs)
	nodeID := envInt("NODE_ID", 1, &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		Redis: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		Postgres: PostgresConfig{
			Host:     pgHost,
			Port:     pgPort,
			User:     pgUser,
			Password: pgPassword,
			DBName:   pgDBName,
			SSLMode:  pgSSLMode,
		},
		OffersClient: OffersClientConfig{
			BaseURL:           offersBaseURL,
			RequestsPerSecond: offersRPS,
			Burst:             offersBurst,
		},
		Observability: ObservabilityConfig{
			Enabled:      envOr("OTEL_ENABLED", "false"),
			OTLPEndpoint: envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  envOr("OTEL_SERVICE_NAME", "tripsearch"),
		},
		CacheTTLMinutes: cacheTTLMinutes,
		NodeID:          int64(nodeID),
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64, errs *[]error) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return parsed
}
