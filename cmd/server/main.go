package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/places/api/internal/config"
	"github.com/forgo/places/api/internal/database"
	"github.com/forgo/places/api/internal/handler"
	"github.com/forgo/places/api/internal/middleware"
	"github.com/forgo/places/api/internal/repository"
	"github.com/forgo/places/api/internal/service"
	"github.com/forgo/places/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	placeRepo := repository.NewPlaceRepository(db)

	// Initialize services
	uploadService := service.NewUploadService(service.UploadConfig{
		Dir:      cfg.Upload.Dir,
		MaxBytes: cfg.Upload.MaxBytes,
	}, logger)

	geocodeService := service.NewGeocodeService(service.GeocodeConfig{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
	})

	authService := service.NewAuthService(userRepo, jwtService)
	placeService := service.NewPlaceService(placeRepo, userRepo, geocodeService, uploadService)

	// Initialize handlers
	userHandler := handler.NewUserHandler(authService, uploadService)
	placeHandler := handler.NewPlaceHandler(placeService, uploadService)
	healthHandler := handler.NewHealthHandler(db)

	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// User endpoints (public)
	mux.HandleFunc("GET /api/users", userHandler.List)
	mux.HandleFunc("POST /api/users/signup", userHandler.Signup)
	mux.HandleFunc("POST /api/users/login", userHandler.Login)

	// Place endpoints (public reads)
	mux.HandleFunc("GET /api/places/{placeID}", placeHandler.Get)
	mux.HandleFunc("GET /api/places/user/{userID}", placeHandler.GetByUser)

	// Place endpoints (protected mutations)
	authMiddleware := middleware.Auth(jwtService)
	mux.Handle("POST /api/places", authMiddleware(http.HandlerFunc(placeHandler.Create)))
	mux.Handle("PATCH /api/places/{placeID}", authMiddleware(http.HandlerFunc(placeHandler.Update)))
	mux.Handle("DELETE /api/places/{placeID}", authMiddleware(http.HandlerFunc(placeHandler.Delete)))

	// Stored images
	mux.Handle("GET /uploads/images/", http.StripPrefix("/uploads/images/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
