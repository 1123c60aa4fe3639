package main // Entry point package

import (
	"context" // Context for startup deadlines
	"log"     // Logging library
	"time"    // Timeouts

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ekinsu/learnhub/internal/config"     // Environment config loader
	"github.com/ekinsu/learnhub/internal/database"   // MySQL pool and migrations
	"github.com/ekinsu/learnhub/internal/handler"    // HTTP handlers
	"github.com/ekinsu/learnhub/internal/middleware" // Auth, rate limit, cache middleware
	"github.com/ekinsu/learnhub/internal/queue"      // Interaction event consumer
	"github.com/ekinsu/learnhub/internal/recommend"  // Recommendation selector
	"github.com/ekinsu/learnhub/internal/repository" // DB repositories
	"github.com/ekinsu/learnhub/internal/router"     // Route registration
)

func main() {
	// .env is a development convenience; in deployed environments the
	// variables arrive through the process environment.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema migration failed: %v", err)
	}
	cancel()

	// Redis is optional: without it the rate limiter and response cache
	// switch themselves off and everything else keeps working.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	contents := repository.NewContentRepo(db)
	interactions := repository.NewInteractionRepo(db)
	selector := recommend.NewSelector(users, interactions, contents)

	auth := handler.NewAuthHandler(cfg, users)
	catalog := handler.NewContentHandler(contents)
	interact := handler.NewInteractionHandler(contents, interactions)
	recs := handler.NewRecommendationHandler(selector, contents)
	insights := handler.NewInsightsHandler(interactions)
	chat := handler.NewChatbotHandler()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = router.NewHTTPErrorHandler(cfg.IsProd())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
	}))

	// The rate limiter is attached per route group rather than globally so
	// it runs after JWT verification and buckets key on the user id where
	// one exists.
	mw := router.Middlewares{
		Auth:      middleware.JWTAuth(cfg.JWTSecret, users),
		AdminOnly: middleware.RequireRole("admin"),
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, mw)
	router.RegisterContent(e, catalog, mw)
	router.RegisterEngagement(e, interact, recs, insights, mw)
	router.RegisterChatbot(e, chat, mw)

	// The consumer drains interaction.recorded events into the activity
	// log file; it reconnects on its own when the broker drops.
	go func() {
		if err := queue.StartInteractionConsumer(); err != nil {
			log.Printf("interaction consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
