package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/sneaker-store/internal/config"     // Environment config loaders
	"github.com/iliyamo/sneaker-store/internal/database"   // MySQL connection pool
	"github.com/iliyamo/sneaker-store/internal/handler"    // HTTP handlers
	"github.com/iliyamo/sneaker-store/internal/middleware" // Cache and rate limit middleware
	"github.com/iliyamo/sneaker-store/internal/queue"      // Order confirmation consumer
	"github.com/iliyamo/sneaker-store/internal/repository" // Data access layer
	"github.com/iliyamo/sneaker-store/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter.  Both
	// middlewares degrade to pass-through when the client is nil, so a
	// missing Redis only costs the optimizations.
	rdb := config.NewRedisClient()
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	sneakers := repository.NewSneakerRepo(db)
	orders := repository.NewOrderRepo(db)

	e := echo.New()
	e.Use(limitMW) // global token-bucket rate limiting

	router.Register(e, router.Deps{
		Auth:     handler.NewAuthHandler(cfg, users),
		Sneakers: handler.NewSneakerHandler(sneakers),
		Orders:   handler.NewOrderHandler(orders, sneakers),
		Secret:   cfg.JWTSecret,
		Cache:    cacheMW,
	})

	// Consume order confirmations in the background; the consumer
	// reconnects on its own, so a broker outage never blocks startup.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
