package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"todoapi/internal/config"     // Internal config loader
	"todoapi/internal/database"   // Database constructor and schema
	"todoapi/internal/handler"    // HTTP handlers
	"todoapi/internal/middleware" // Redis-backed cache and rate limiter
	"todoapi/internal/queue"      // Background event consumer
	"todoapi/internal/repository" // Data access layer
	"todoapi/internal/router"     // Route registration
	"todoapi/internal/service"    // RabbitMQ event publisher
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env always wins

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBURL, cfg.DBPath) // SQLite file by default, MySQL when DATABASE_URL is set
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client turns caching and rate limiting into
	// passthroughs.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	limitCfg := config.LoadRateLimitConfig()

	repo := repository.NewTodoRepo(db) // Inject the storage handle into the handlers
	todos := handler.NewTodoHandler(repo)
	todos.Cache = middleware.NewInvalidator(cacheCfg, rdb)
	if cfg.Events {
		todos.Events = service.NewAMQPPublisher()
		go func() { // The consumer owns its reconnect loop for the process lifetime
			if err := queue.StartTodoEventConsumer(); err != nil {
				log.Printf("todo-consumer: %v", err)
			}
		}()
	}
	health := handler.NewHealthHandler(repo)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	router.RegisterRoutes(e, todos, health,
		middleware.NewResponseCache(cacheCfg, rdb),
		middleware.NewRateLimiter(limitCfg, rdb),
	)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
