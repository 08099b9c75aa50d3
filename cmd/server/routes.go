package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Skufu/nidhaan-assistant/internal/assistant"
	"github.com/Skufu/nidhaan-assistant/pkg/logging"
)

// multipart envelope allowance on top of the file size limit
const uploadOverhead = 1 << 20

type chatService interface {
	Ask(ctx context.Context, question string) string
	AnalyzeUpload(ctx context.Context, up assistant.Upload) string
	ClearHistory(ctx context.Context) error
}

func setupRouter(cfg *Config, db HealthChecker, svc chatService, logger *logging.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	if db == nil {
		panic("server: health checker required")
	}

	router := gin.New()
	router.Use(
		requestLogger(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg.AllowedOrigins)),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Nidhaan Healthcare API is running",
			"version": apiVersion,
			"status":  "active",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "API is running normally"})
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     fmt.Sprintf("unhealthy: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
	})

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	router.GET("/query/", limitBodySize(1<<20), func(c *gin.Context) {
		question := strings.TrimSpace(c.Query("user_input"))
		if question == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query cannot be empty"})
			return
		}

		logger.Info("processing text query", "query", truncate(question, 50))
		answer := svc.Ask(c.Request.Context(), question)
		c.JSON(http.StatusOK, gin.H{"response": gin.H{"answer": answer}})
	})

	router.POST("/upload/", limitBodySize(cfg.MaxUploadBytes+uploadOverhead), func(c *gin.Context) {
		tooLarge := gin.H{"error": "File too large. Maximum size is " + formatSize(cfg.MaxUploadBytes)}

		fh, err := c.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.JSON(http.StatusRequestEntityTooLarge, tooLarge)
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}
		if fh.Filename == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}
		if fh.Size > cfg.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, tooLarge)
			return
		}

		f, err := fh.Open()
		if err != nil {
			logger.Error("open uploaded file failed", "filename", fh.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error while processing file"})
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, cfg.MaxUploadBytes+1))
		if err != nil {
			logger.Error("read uploaded file failed", "filename", fh.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error while processing file"})
			return
		}
		if int64(len(data)) > cfg.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, tooLarge)
			return
		}

		question := strings.TrimSpace(c.Query("user_query"))
		logger.Info("processing file upload", "filename", fh.Filename, "has_query", question != "")

		answer := svc.AnalyzeUpload(c.Request.Context(), assistant.Upload{
			Filename: fh.Filename,
			Data:     data,
			Question: question,
		})
		c.JSON(http.StatusOK, gin.H{"response": gin.H{"answer": answer}})
	})

	router.GET("/clear-history/", func(c *gin.Context) {
		if err := svc.ClearHistory(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing chat history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Chat history cleared successfully", "status": "success"})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// requestLogger emits structured start/finish lines and propagates X-Request-ID.
func requestLogger(logger *logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-ID", reqID)

		logger.Debug("request started",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", reqID,
			"remote_ip", c.ClientIP(),
		)
		c.Next()
		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", reqID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// formatSize renders a byte limit in the largest whole unit that keeps it non-zero.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
