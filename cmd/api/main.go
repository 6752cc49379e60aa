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

	"github.com/go-contacts-api/internal/config"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
	"github.com/go-contacts-api/internal/infrastructure/memcache"
	"github.com/go-contacts-api/internal/infrastructure/postgres"
	redisinfra "github.com/go-contacts-api/internal/infrastructure/redis"
	s3infra "github.com/go-contacts-api/internal/infrastructure/s3"
	"github.com/go-contacts-api/internal/infrastructure/smtp"
	transporthttp "github.com/go-contacts-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()
	if err := postgres.RunMigrations(context.Background(), db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	// User cache: Redis in normal operation, in-process fallback when no
	// address is configured.
	var userCache transporthttp.UserCache
	if cfg.RedisAddr != "" {
		userCache = redisinfra.NewUserCache(redisinfra.NewClient(cfg), cfg.UserCacheTTL())
	} else {
		log.Println("REDIS_ADDR not set, using in-process user cache")
		userCache = memcache.NewUserCache(cfg.UserCacheTTL())
	}

	s3Client, err := s3infra.NewClient(cfg)
	if err != nil {
		log.Fatalf("s3 client: %v", err)
	}
	avatarStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	mailer := smtp.NewMailer(cfg)

	deps := &transporthttp.Deps{
		UserRepo:    postgres.NewUserRepo(db),
		ContactRepo: postgres.NewContactRepo(db),
		UserCache:   userCache,
		AvatarStore: avatarStore,
		Mailer:      mailer,
		JWTProvider: jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
