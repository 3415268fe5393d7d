package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/lifelens/lifelens/internal/engine"
	"github.com/lifelens/lifelens/internal/ml"
	"github.com/lifelens/lifelens/internal/profile"
	"github.com/lifelens/lifelens/internal/risk"
	"github.com/lifelens/lifelens/internal/store"
)

type Config struct {
	Port        string
	ScorerMode  string // "model" or "rules"
	CohortSize  int
	TrainSeed   uint64
	DatabaseURL string
	EnableDB    bool
}

func main() {
	gin.SetMode(getEnv("GIN_MODE", "release"))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("scorer init failed: %v", err)
	}
	log.Printf("scorer ready: %s", eng.ScorerName())

	ctx := context.Background()
	var db store.Store
	if cfg.EnableDB {
		db, err = store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer db.Close()
	}

	router := setupRouter(eng, db)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	log.Printf("server listening on :%s", cfg.Port)
	waitForShutdown(server)
}

func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cohortSize, err := strconv.Atoi(getEnv("COHORT_SIZE", "5000"))
	if err != nil || cohortSize <= 0 {
		return nil, fmt.Errorf("COHORT_SIZE must be a positive integer")
	}
	seed, err := strconv.ParseUint(getEnv("TRAIN_SEED", "42"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TRAIN_SEED must be an unsigned integer")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		ScorerMode:  strings.ToLower(getEnv("SCORER", "model")),
		CohortSize:  cohortSize,
		TrainSeed:   seed,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		EnableDB:    strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
	}

	if cfg.ScorerMode != "model" && cfg.ScorerMode != "rules" {
		return nil, fmt.Errorf("SCORER must be \"model\" or \"rules\", got %q", cfg.ScorerMode)
	}
	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	return cfg, nil
}

// buildEngine trains the model registry at startup, or wires the
// deterministic scorer when SCORER=rules.
func buildEngine(cfg *Config) (*engine.Engine, error) {
	if cfg.ScorerMode == "rules" {
		return engine.NewBaselineEngine(risk.Baseline{}), nil
	}

	start := time.Now()
	registry, err := ml.Train(ml.TrainOptions{
		CohortSize: cfg.CohortSize,
		Seed:       cfg.TrainSeed,
	})
	if err != nil {
		return nil, fmt.Errorf("train models: %w", err)
	}
	log.Printf("trained %d-person cohort in %s", cfg.CohortSize, time.Since(start).Round(time.Millisecond))
	return engine.NewModelEngine(registry), nil
}

func setupRouter(eng *engine.Engine, db store.Store) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

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

	router.POST("/api/v1/assess", func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		p := profile.Parse(payload)
		results := eng.Assess(p)
		id := uuid.NewString()

		if db != nil {
			// Audit is best effort; a storage failure never fails the request.
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()
			if err := db.SaveAssessment(ctx, id, payload, eng.ScorerName(), results); err != nil {
				log.Printf("save assessment %s: %v", id, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     id,
			"scorer": eng.ScorerName(),
			"risks":  results,
		})
	})

	return router
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
