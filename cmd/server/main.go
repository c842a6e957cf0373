package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nekomate-backend/internal/analytics"
	"nekomate-backend/internal/config"
	"nekomate-backend/internal/database"
	"nekomate-backend/internal/handlers"
	"nekomate-backend/internal/middleware"
	"nekomate-backend/internal/repository"
	"nekomate-backend/internal/router"
	"nekomate-backend/internal/services"
	"nekomate-backend/internal/timer"
	"nekomate-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting NekoMate Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	todoRepo := repository.NewTodoRepo(pool)
	calendarRepo := repository.NewCalendarRepo(pool)
	noteRepo := repository.NewNoteRepo(pool)

	// ──── Step 5: Initialize Timer Engine ────
	ledger := analytics.NewLedger(sessionRepo)
	timerChannel := timer.NewRedisChannel(redisClients.State, redisClients.PubSub)
	timerService := timer.NewService(timerChannel, ledger, timer.SystemClock, cfg.DefaultTimerMinutes)
	defer timerService.Close()

	janitor := timer.NewJanitor(
		redisClients.State,
		timerChannel,
		timerService,
		time.Duration(cfg.JanitorStaleMinutes)*time.Minute,
	)
	janitor.Start()
	log.Println("✓ Timer engine and janitor started")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, redisClients.State, jwtAuth)
	chatbotService := services.NewChatbotService()

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	timerHandler := handlers.NewTimerHandler(timerService, noteRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(sessionRepo, todoRepo)
	todoHandler := handlers.NewTodoHandler(todoRepo)
	calendarHandler := handlers.NewCalendarHandler(calendarRepo)
	chatHandler := handlers.NewChatHandler(chatbotService)
	userHandler := handlers.NewUserHandler(userRepo)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		timerHandler,
		analyticsHandler,
		todoHandler,
		calendarHandler,
		chatHandler,
		userHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		janitor.Stop()
		timerService.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ NekoMate Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
