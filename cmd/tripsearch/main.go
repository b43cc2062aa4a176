package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"tripsearch/cfg"
	"tripsearch/internal/itinerary"
	"tripsearch/internal/lodging"
	"tripsearch/internal/reference"
	"tripsearch/pkg/cache"
	"tripsearch/pkg/db"
	"tripsearch/pkg/idgen"
	"tripsearch/pkg/logger"
	"tripsearch/pkg/offerclient"
)

func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	if config.Observability.Enabled == "true" {
		shutdownOtel, err := initOtel(context.Background(), config, zlogger)
		if err != nil {
			log.Printf("WARNING: failed to initialize OpenTelemetry: %v", err)
			log.Printf("Continuing without tracing/metrics...")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownOtel(ctx); err != nil {
					log.Printf("failed to shutdown OpenTelemetry: %v", err)
				}
			}()
		}
	}

	// ============
	// Build Postgres DSN from config
	// ============
	pg := config.Postgres
	pgDSN := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		pg.User,
		pg.Password,
		pg.Host,
		pg.Port,
		pg.DBName,
		pg.SSLMode,
	)

	// ============
	// Reference data (Postgres + migrations). Resolution is advisory,
	// so a missing database degrades to raw codes instead of failing
	// startup.
	// ============
	var loader reference.Loader
	sqlClient, err := db.NewSQLClient("postgres", pgDSN)
	if err != nil {
		zlogger.Warn("Postgres unavailable, reference names disabled",
			logger.Field{Key: "err", Value: err},
		)
		loader = reference.LoaderFunc(func(context.Context) ([]reference.Pair, error) {
			return nil, err
		})
	} else {
		m, err := migrate.New("file://migrations", pgDSN)
		if err == nil {
			err = m.Up()
		}
		if err != nil && err != migrate.ErrNoChange {
			zlogger.Warn("Migration failed", logger.Field{Key: "err", Value: err})
		}
		loader = reference.NewStore(sqlClient)
	}
	resolver := reference.NewCache(context.Background(), loader, zlogger)

	// ============
	// Cache
	// ============
	var searchCache cache.Cache
	searchCache, err = cache.NewRedisCache(cache.RedisOptions{
		Addr:     config.Redis.Host + ":" + config.Redis.Port,
		Password: config.Redis.Password,
	})
	if err != nil {
		zlogger.Warn("Redis unavailable, caching disabled",
			logger.Field{Key: "err", Value: err},
		)
		searchCache = cache.NewNoOpCache()
	}

	// ============
	// ID generator
	// ============
	ids, err := idgen.NewSnowflakeGenerator(config.NodeID)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// Upstream offers client
	// ============
	httpClient := &http.Client{Timeout: 5 * time.Second}
	offers := offerclient.New(httpClient, config.OffersClient.BaseURL, zlogger)
	limiter := rate.NewLimiter(
		rate.Limit(config.OffersClient.RequestsPerSecond),
		config.OffersClient.Burst,
	)

	// ============
	// Services
	// ============
	itinerarySvc := itinerary.NewService(offers, searchCache, resolver, ids,
		config.CacheTTLMinutes, zlogger)
	lodgingSvc := lodging.NewService(offers, searchCache, ids, limiter,
		config.CacheTTLMinutes, zlogger)

	// ============
	// HTTP
	// ============
	r := gin.Default()
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(TraceLoggerMiddleware(zlogger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	itinerary.NewHandler(itinerarySvc).RegisterRoutes(r)
	lodging.NewHandler(lodgingSvc).RegisterRoutes(r)

	if err := r.Run(":" + config.AppPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// TraceLoggerMiddleware extracts trace_id and span_id from the request context and attaches it to logger
func TraceLoggerMiddleware(log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			traceID := span.SpanContext().TraceID().String()
			spanID := span.SpanContext().SpanID().String()

			// Store trace info in context for later use
			c.Set("trace_id", traceID)
			c.Set("span_id", spanID)

			log.Info("incoming request",
				logger.Field{Key: "trace_id", Value: traceID},
				logger.Field{Key: "span_id", Value: spanID},
				logger.Field{Key: "method", Value: c.Request.Method},
				logger.Field{Key: "path", Value: c.Request.URL.Path},
			)
		}

		c.Next()

		if span.SpanContext().IsValid() {
			traceID := span.SpanContext().TraceID().String()
			spanID := span.SpanContext().SpanID().String()

			log.Info("request completed",
				logger.Field{Key: "trace_id", Value: traceID},
				logger.Field{Key: "span_id", Value: spanID},
				logger.Field{Key: "status", Value: c.Writer.Status()},
				logger.Field{Key: "method", Value: c.Request.Method},
				logger.Field{Key: "path", Value: c.Request.URL.Path},
			)
		}
	}
}

// initOtel initializes OpenTelemetry tracer and meter with OTLP exporter
func initOtel(ctx context.Context, config *cfg.Config, log logger.Client) (func(context.Context) error, error) {
	conn, err := grpc.NewClient(
		config.Observability.OTLPEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.Observability.ServiceName),
			semconv.DeploymentEnvironment(config.AppEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	log.Info("OpenTelemetry initialized - sending to OTLP collector",
		logger.Field{Key: "otlp_endpoint", Value: config.Observability.OTLPEndpoint},
	)

	shutdown := func(ctx context.Context) error {
		var errs []error

		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown failed: %w", err))
		}

		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown failed: %w", err))
		}

		if len(errs) > 0 {
			return fmt.Errorf("otel shutdown errors: %v", errs)
		}
		return nil
	}

	return shutdown, nil
}
