package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/adaptiveplay/tictactoe/backend/internal/config"
	"github.com/adaptiveplay/tictactoe/backend/internal/repository/postgres"
	"github.com/adaptiveplay/tictactoe/backend/internal/repository/redis"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/bot"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/game"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/learning"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/persist"
	transportHttp "github.com/adaptiveplay/tictactoe/backend/internal/transport/http"
	"github.com/adaptiveplay/tictactoe/backend/internal/transport/http/middleware"
	"github.com/adaptiveplay/tictactoe/backend/internal/transport/websocket"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Apply Pool Settings
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMin) * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Database unreachable:", err)
	}

	log.Println("Running database migrations...")
	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Repositories (Persistence Layer)
	gameRepo := postgres.NewGameRepo(db)
	learningRepo := postgres.NewLearningRepo(db)

	if err := redis.InitRedis(); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	var cache persist.Cache
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		cache = redis.NewSnapshotCache(redis.RedisClient)
	}

	// Learning models and decision engine
	opponent := learning.NewOpponentModel()
	selector := learning.NewStrategySelector(nil)
	engine := bot.NewEngine(opponent, selector, nil)
	engine.SetMCTSBudget(cfg.MCTSIterations, time.Duration(cfg.MCTSBudgetMs)*time.Millisecond)

	store := persist.NewStore(learningRepo, cache, opponent, selector)
	store.LoadAll(context.Background())

	// Background autosave
	saveWorker := persist.NewWorker(store, cfg.SaveInterval)
	saveWorker.Start()

	sessionManager := game.NewSessionManager(engine, store, gameRepo)
	connManager := websocket.NewConnectionManager()

	// HTTP Handlers (API Layer)
	engineHandler := transportHttp.NewEngineHandler(engine)
	statsHandler := transportHttp.NewStatsHandler(store)
	historyHandler := transportHttp.NewHistoryHandler(gameRepo)
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.JWTSecret)

	// Gin Router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"activeGames":  sessionManager.ActiveCount(),
			"patterns":     opponent.PatternCount(),
			"redisEnabled": redis.IsRedisEnabled(),
		})
	})

	// Stateless engine API
	router.POST("/api/move", engineHandler.ComputeMove)
	router.POST("/api/learn/observe", engineHandler.Observe)
	router.POST("/api/learn/outcome", engineHandler.Outcome)

	// Learning state, read-only
	router.GET("/api/stats/strategies", statsHandler.Strategies)
	router.GET("/api/stats/patterns", statsHandler.Patterns)

	// Game history
	router.GET("/api/games/recent", historyHandler.RecentGames)

	// Admin-guarded reset
	admin := router.Group("/")
	admin.Use(middleware.AdminAuthMiddleware(cfg.AdminToken))
	{
		admin.POST("/api/learn/reset", statsHandler.Reset)
	}

	// WebSocket Route (guest auth handled inside the WS handler itself)
	router.GET("/ws", wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Flush learning state before the process dies
	if err := store.SaveAll(ctx); err != nil {
		log.Printf("[SAVE] Final save on shutdown failed: %v", err)
	} else {
		log.Println("[SAVE] Learning state flushed on shutdown")
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
