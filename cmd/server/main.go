package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/config"
	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/frontend"
	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/handlers"
	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/model"
	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/servo"
)

func main() {
	_ = godotenv.Load()

	configPath := config.Path()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config from %s: %v", configPath, err)
	}

	log.Printf("Loading model from: %s", cfg.ModelPath)

	classifier, err := model.NewClassifier(cfg.ModelPath, cfg.MetadataPath)
	if err != nil {
		log.Fatalf("Failed to initialize classifier: %v", err)
	}
	defer classifier.Close()

	hub := servo.NewHub()
	controller := servo.NewController(hub)

	server := defineServer(cfg)

	handler := handlers.NewHandler(classifier, controller)
	handler.SetRoutes(server)
	server.GET("/ws/servo", hub.Handler(controller))
	frontend.NewFrontendService().SetRoutes(server)

	log.Printf("Model loaded: %s", cfg.ModelPath)
	log.Printf("Classes: %v", classifier.Metadata.Classes)
	log.Println("Endpoints:")
	log.Println("  GET  /health   - Health check")
	log.Println("  POST /predict  - Classify waste image upload")
	log.Println("  GET  /ws/servo - Servo simulation feed")

	portString := fmt.Sprintf(":%d", cfg.Port)

	// Start HTTP server in a goroutine to allow graceful shutdown
	go func() {
		if err := server.Start(portString); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Printf("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}

func defineServer(cfg *config.ServiceConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.DetailHTTPErrorHandler

	// Skip request logging for the health probe.
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogURI:      true,
		LogError:    true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				slog.Error("request",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Duration("latency", v.Latency),
					slog.String("remote_ip", v.RemoteIP),
					slog.Any("error", v.Error))
			} else {
				slog.Info("request",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Duration("latency", v.Latency),
					slog.String("remote_ip", v.RemoteIP))
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: fmt.Sprintf("%dM", cfg.MaxUploadMB),
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	e.Pre(middleware.RemoveTrailingSlash())

	return e
}
