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

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"scaletrend/internal/adapters/cache"
	adapterHTTP "scaletrend/internal/adapters/handler/http"
	"scaletrend/internal/adapters/localstore"
	"scaletrend/internal/adapters/repository"
	"scaletrend/internal/core/domain"
	"scaletrend/internal/core/services"
	"scaletrend/internal/storage"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables.")
	}

	serverPort := getEnv("PORT", "8080")
	storageMode := getEnv("STORAGE", "postgres")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is not set")
	}

	var (
		db        *sqlx.DB
		rdb       *redis.Client
		entryRepo domain.EntryRepository
		goalRepo  domain.GoalRepository
		userRepo  domain.UserRepository
	)

	switch storageMode {
	case "local":
		dbPath := getEnv("LOCAL_DB_PATH", "data/scaletrend.db")

		log.Printf("Running in local mode, data stored in %s", dbPath)

		store, err := localstore.Open(dbPath)
		if err != nil {
			log.Fatalf("Critical: Failed to open local store: %v", err)
		}
		defer store.Close()

		entryRepo = localstore.NewEntryRepository(store)
		goalRepo = localstore.NewGoalRepository(store)
		userRepo = repository.NewInMemoryUserRepository()

	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
			getEnv("DB_SSLMODE", "disable"))

		log.Println("Connecting to database...")

		var err error
		db, err = sqlx.Connect("pgx", dsn)
		if err != nil {
			log.Fatalf("Critical: Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		log.Println("Database connected successfully.")

		if err := storage.RunMigrations(db); err != nil {
			log.Fatalf("Critical: Failed to run migrations: %v", err)
		}

		entryRepo = repository.NewPostgresEntryRepository(db)
		goalRepo = repository.NewPostgresGoalRepository(db)
		userRepo = repository.NewPostgresUserRepository(db)

		rdb, err = cache.NewRedisClient(
			getEnv("REDIS_HOST", "localhost"),
			getEnv("REDIS_PORT", "6379"),
			os.Getenv("REDIS_PASSWORD"),
			0)
		if err != nil {
			log.Printf("Redis unavailable, running without cache: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
			entryRepo = repository.NewCachedEntryRepository(entryRepo, rdb)
		}

	default:
		log.Fatalf("Critical: Unknown STORAGE mode %q (want postgres or local)", storageMode)
	}

	ledgerService := services.NewLedgerService(entryRepo, goalRepo)
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(jwtSecret, "scaletrend", 24*time.Hour, userRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:  adapterHTTP.NewAuthHandler(authService, tokenService),
		EntryHandler: adapterHTTP.NewEntryHandler(ledgerService),
		GoalHandler:  adapterHTTP.NewGoalHandler(ledgerService),
		StatsHandler: adapterHTTP.NewStatsHandler(ledgerService),
		TokenService: tokenService,
		DB:           db,
		Redis:        rdb,
		StartTime:    startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("ScaleTrend API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
