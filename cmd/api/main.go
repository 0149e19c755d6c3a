package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/KehaoC/GF/internal/config"
	"github.com/KehaoC/GF/internal/crypto"
	"github.com/KehaoC/GF/internal/handler"
	"github.com/KehaoC/GF/internal/middleware"
	"github.com/KehaoC/GF/internal/repository"
	"github.com/KehaoC/GF/internal/service"
	"github.com/KehaoC/GF/internal/storage"
)

const apiPrefix = "/api/v1"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(context.Background(), db); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	blobs, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		slog.Error("upload dir unavailable", "error", err)
		os.Exit(1)
	}

	tokens := crypto.NewTokenService(cfg.SecretKey, cfg.TokenExpiry)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	cardRepo := repository.NewCardRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo)
	cardService := service.NewCardService(cardRepo)
	fileService := service.NewFileService(blobs, cfg.MaxFileSize, cfg.AllowedExtensions, apiPrefix+"/files")

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	cardHandler := handler.NewCardHandler(cardService)
	fileHandler := handler.NewFileHandler(fileService, cfg.MaxFileSize)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(nil))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Welcome to Guru API"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route(apiPrefix, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/auth/register", authHandler.HandleRegister)
			r.Post("/auth/login", authHandler.HandleLogin)
		})

		// Public reads: example projects and uploaded files by name.
		r.Get("/projects/examples", projectHandler.HandleListExamples)
		r.Get("/files/{filename}", fileHandler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authService))

			r.Get("/users/me", userHandler.HandleMe)
			r.Put("/users/me", userHandler.HandleUpdateMe)

			r.Get("/projects", projectHandler.HandleList)
			r.Post("/projects", projectHandler.HandleCreate)
			r.Get("/projects/{project_id}", projectHandler.HandleGet)
			r.Put("/projects/{project_id}", projectHandler.HandleUpdate)
			r.Delete("/projects/{project_id}", projectHandler.HandleDelete)

			r.Get("/cards", cardHandler.HandleList)
			r.Post("/cards", cardHandler.HandleCreate)
			r.Get("/cards/{card_id}", cardHandler.HandleGet)
			r.Delete("/cards/{card_id}", cardHandler.HandleDelete)

			r.Post("/files/upload", fileHandler.HandleUpload)
			r.Post("/files/upload-base64", fileHandler.HandleUploadBase64)
			r.Delete("/files/{filename}", fileHandler.HandleDelete)
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
