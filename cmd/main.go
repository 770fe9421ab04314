package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/cache"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/gateway"
	h "github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/http"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/publisher"
	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/service"
)

type Config struct {
	HTTPPort        string
	PublicBaseURL   string
	GatewayBaseURL  string
	GatewayAPIKey   string
	WebhookSecret   string
	RedisAddr       string
	KafkaBrokers    []string
	GatewayTimeout  time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		GatewayBaseURL:  getEnv("GATEWAY_BASE_URL", "https://api.gateway.example.com"),
		GatewayAPIKey:   getEnv("GATEWAY_API_KEY", ""),
		WebhookSecret:   getEnv("WEBHOOK_SECRET", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		GatewayTimeout:  10 * time.Second,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("checkout-service starting...")

	cfg := loadConfig()
	if cfg.GatewayAPIKey == "" {
		log.Fatal("GATEWAY_API_KEY is required")
	}
	if cfg.WebhookSecret == "" {
		log.Println("WARNING: WEBHOOK_SECRET is empty, webhook deliveries will be rejected")
	}

	ctx := context.Background()

	// Order store: volatile by default, redis when configured.
	var store cache.OrderStore = cache.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		log.Printf("Using redis order store at %s", cfg.RedisAddr)
		store = cache.NewRedisStore(redisClient)
	}

	var confirmed service.ConfirmedPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := publisher.NewConfirmed(cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		confirmed = kafkaPublisher
		log.Printf("Publishing confirmed orders to %v", cfg.KafkaBrokers)
	}

	gw := gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayAPIKey, cfg.GatewayTimeout)

	discounts := service.NewDiscountResolver(gw)
	checkoutService := service.NewCheckoutService(gw, discounts, cfg.PublicBaseURL)
	orderService := service.NewOrderService(gw, store, confirmed)

	router := h.NewRouter(
		h.NewCheckoutHandler(checkoutService),
		h.NewOrdersHandler(orderService),
		h.NewWebhookHandler(orderService, cfg.WebhookSecret),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "checkout-service"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("checkout-service listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
