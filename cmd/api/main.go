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

	"github.com/go-inbox-api/internal/config"
	"github.com/go-inbox-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-inbox-api/internal/infrastructure/jwt"
	snsinfra "github.com/go-inbox-api/internal/infrastructure/sns"
	transporthttp "github.com/go-inbox-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	deps := &transporthttp.Deps{
		MessageRepo: dynamo.NewMessageRepo(dynamoClient, cfg.DynamoTables.Messages, cfg.DynamoTables.Counters),
		JWTProvider: jwtProvider,
	}

	// Event publishing is opt-in: no topic, no publisher.
	if cfg.SNSTopicARN != "" {
		if publisher, err := snsinfra.NewPublisher(cfg); err == nil {
			deps.Events = publisher
		} else {
			log.Printf("WARN: SNS publisher not available: %v", err)
		}
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
