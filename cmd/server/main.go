package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Skufu/nidhaan-assistant/internal/assistant"
	"github.com/Skufu/nidhaan-assistant/internal/history"
	"github.com/Skufu/nidhaan-assistant/internal/llm"
	"github.com/Skufu/nidhaan-assistant/internal/metrics"
	"github.com/Skufu/nidhaan-assistant/pkg/logging"
)

const apiVersion = "2.0.0"

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Port           string        `env:"PORT" validate:"required"`
	DatabaseURL    string        `env:"DATABASE_URL" validate:"required"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY" validate:"required"`
	GeminiModel    string        `env:"GEMINI_MODEL"`
	LogLevel       string        `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat      string        `env:"LOG_FORMAT" validate:"oneof=json console"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" validate:"min=1"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" validate:"gt=0"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" validate:"gt=0"`
}

var defaultOrigins = []string{
	"http://localhost:8080",
	"http://localhost:8000",
	"http://127.0.0.1:5500",
	"http://localhost:3000",
	"http://localhost:63342",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("env")
	})
	return v
}

func main() {
	gin.SetMode(getEnv("GIN_MODE", "release"))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx := context.Background()
	pool, err := connectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	gen, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("gemini client failed: %v", err)
	}
	defer func() { _ = gen.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewAssistantMetrics(reg)

	svc := assistant.NewService(
		history.NewStore(pool),
		assistant.NewDispatcher(gen, logger, m),
		assistant.NewDocumentAnalyzer(gen, logger, m),
		logger,
		m,
	)

	router := setupRouter(cfg, pool, svc, logger, reg)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port, "model", cfg.GeminiModel)
	waitForShutdown(server, logger)
}

func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", llm.DefaultGeminiModel),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "json")),
		AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", defaultOrigins),
		MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 10<<20),
		WriteTimeout:   getEnvAsDuration("WRITE_TIMEOUT", 120*time.Second),
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "required" {
				return nil, fmt.Errorf("%s is required", fe.Field())
			}
			return nil, fmt.Errorf("%s is invalid (%s)", fe.Field(), fe.Tag())
		}
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func waitForShutdown(server *http.Server, logger *logging.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
