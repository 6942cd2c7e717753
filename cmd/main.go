package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aalf/program-service/internal/command"
	"github.com/aalf/program-service/internal/config"
	"github.com/aalf/program-service/internal/handler"
	"github.com/aalf/program-service/internal/query"
	"github.com/aalf/program-service/internal/repository"
	"github.com/aalf/program-service/shared/events"
	"github.com/aalf/program-service/shared/middleware"
	redisClient "github.com/aalf/program-service/shared/redis"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.MustInitJWTSecret(cfg.JWTSecret)

	// Database connection (source of truth)
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if cfg.DBAutoMigrate {
		if err := repository.Migrate(context.Background(), db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Database schema is up to date")
	}

	// Redis connection (program event stream)
	redis, err := redisClient.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	writeRepo := repository.NewProgramWriteRepository(db)
	readRepo := repository.NewProgramReadRepository(db, cfg.LookupWithDeleted)
	levelRepo := repository.NewAcademicLevelReadRepository(db)

	commandSvc := command.NewProgramCommandService(writeRepo, publisher)
	querySvc := query.NewProgramQueryService(readRepo, levelRepo)

	programHandler := handler.NewProgramHandler(commandSvc, querySvc)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewHTTPMetrics(registry, "program-service")

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(), metrics.Middleware())

	v1 := router.Group("/v1/programas")
	{
		v1.POST("", middleware.AuthMiddleware(), programHandler.CreateProgram)
		v1.GET("", programHandler.ListPrograms)
		v1.GET("/:id", programHandler.GetProgram)
		v1.PATCH("/:id", middleware.AuthMiddleware(), programHandler.UpdateProgram)
		v1.DELETE("/:id", middleware.AuthMiddleware(), programHandler.DeleteProgram)
	}
	router.GET("/v1/niveles-academicos", programHandler.ListAcademicLevels)

	router.GET("/health", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": "program-service"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "program-service"})
	})
	router.GET("/metrics", middleware.MetricsHandler(registry))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Program service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shut down: %v", err)
	}
}
