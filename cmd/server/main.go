package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kcorless/UpNDown/internal/common/clock"
	"github.com/kcorless/UpNDown/internal/common/gamecode"
	"github.com/kcorless/UpNDown/internal/common/uuid"
	"github.com/kcorless/UpNDown/internal/deck"
	"github.com/kcorless/UpNDown/internal/handlers/httpapi"
	"github.com/kcorless/UpNDown/internal/repositories/game"
	"github.com/kcorless/UpNDown/internal/repositories/player"
	"github.com/kcorless/UpNDown/internal/services/lobby"
	"github.com/kcorless/UpNDown/internal/services/play"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	gameRepo, err := game.NewRedis(&game.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create game repository: %v", err)
	}

	profileRepo, err := player.NewRedis(&player.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create player repository: %v", err)
	}

	// Initialize lobby service
	lobbySvc, err := lobby.New(&lobby.Config{
		GameRepo:      gameRepo,
		ProfileRepo:   profileRepo,
		Shuffler:      deck.New(&deck.Config{}),
		CodeGenerator: gamecode.New(&gamecode.Config{}),
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create lobby service: %v", err)
	}

	// Initialize play service
	playSvc, err := play.New(&play.Config{
		GameRepo:    gameRepo,
		ProfileRepo: profileRepo,
		Clock:       &clock.DefaultClock{},
	})
	if err != nil {
		log.Fatalf("Failed to create play service: %v", err)
	}

	// Initialize HTTP handler
	handler, err := httpapi.New(&httpapi.Config{
		LobbyService: lobbySvc,
		PlayService:  playSvc,
		GameRepo:     gameRepo,
		ProfileRepo:  profileRepo,
	})
	if err != nil {
		log.Fatalf("Failed to create HTTP handler: %v", err)
	}

	if getEnv("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler.Register(router)

	server := &http.Server{
		Addr:    getEnv("LISTEN_ADDR", ":8080"),
		Handler: router,
	}

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
