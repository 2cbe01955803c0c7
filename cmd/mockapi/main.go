package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fracki1010/edu-cart-app/internal/config"
	"github.com/fracki1010/edu-cart-app/internal/mockapi"
	"github.com/fracki1010/edu-cart-app/internal/mockapi/store"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load(os.Getenv("EDUCART_CONFIG"))
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	var carts store.CartStore = store.NewMemoryStore()
	if cfg.Mock.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Mock.RedisAddr})
		defer client.Close()
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		carts = store.NewRedisStore(client)
		log.Info("using redis cart store", zap.String("addr", cfg.Mock.RedisAddr))
	}

	server := mockapi.New(cfg.Mock.JWTSecret, carts, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Mock.Port,
		Handler:      server.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("mock API listening", zap.String("port", cfg.Mock.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down mock API")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}
	log.Info("mock API stopped")
}
