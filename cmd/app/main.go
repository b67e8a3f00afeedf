package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"fooddelivery/api"
	"fooddelivery/cmd"
	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"
	"fooddelivery/internal/pkg/metrics"
	"fooddelivery/internal/pkg/tracing"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.InitTracer("fooddelivery", configs.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			logger.Error("tracer shutdown failed", "error", err)
		}
	}()

	gormDB, err := connectDB(ctx, configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var rdb redis.Cmdable
	if configs.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     configs.RedisAddr,
			Password: configs.RedisPassword,
			DB:       configs.RedisDB,
		})
		if err = client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		rdb = client
	}

	var publisher ports.EventPublisher
	if len(configs.KafkaBrokers) > 0 {
		producer := kafka.NewEventPublisher(configs.KafkaBrokers, configs.KafkaEventsTopic)
		defer producer.Close()
		publisher = producer
	}

	app := cmd.NewCompositionRoot(configs, gormDB, rdb, publisher, logger)

	jobManager := jobs.NewJobManager(app.CreateJobs()...)
	if err = jobManager.StartAll(ctx); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := newWebServer(ctx, &app, logger)
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
	}
}

func getConfigs() cmd.Config {
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:   getEnv("HTTP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "fooddelivery"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		KafkaBrokers:     splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaEventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "fooddelivery.events"),

		RestaurantServiceURL:   getEnv("RESTAURANT_SERVICE_URL", "http://localhost:8081"),
		NotificationServiceURL: getEnv("NOTIFICATION_SERVICE_URL", ""),
		CollaboratorTimeout:    getEnvDuration("COLLABORATOR_TIMEOUT", 5*time.Second),

		PaymentWebhookSecret:    getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		PaymentWebhookTolerance: getEnvDuration("PAYMENT_WEBHOOK_TOLERANCE", 5*time.Minute),

		AssignmentRetryEnabled:  getEnvBool("ASSIGNMENT_RETRY_ENABLED", false),
		AssignmentRetrySchedule: getEnv("ASSIGNMENT_RETRY_SCHEDULE", jobs.DefaultAssignmentRetrySchedule),
		AssignmentRetryLimit:    getEnvInt("ASSIGNMENT_RETRY_LIMIT", 50),
		OutboxSchedule:          getEnv("OUTBOX_SCHEDULE", jobs.DefaultOutboxSchedule),
		OutboxBatchSize:         getEnvInt("OUTBOX_BATCH_SIZE", 100),

		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, defaultValue.String()))
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func connectDB(ctx context.Context, configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return gormDB, nil
}

func newWebServer(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpin.ErrorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(metrics.EchoMiddleware())

	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := httpin.RequestValidator(doc, httpin.SkipWebhook)
	if err != nil {
		return nil, err
	}
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if err = httpin.RegisterSwagger(e, doc); err != nil {
		return nil, err
	}

	httpin.RegisterHandlers(e, httpin.NewServer(app.CreateHTTPHandlers(), logger))
	return e, nil
}
