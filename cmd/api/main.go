package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mriera/bloglist-backend/internal/api"
	"github.com/mriera/bloglist-backend/internal/auth"
	"github.com/mriera/bloglist-backend/internal/config"
	"github.com/mriera/bloglist-backend/internal/db"
	"github.com/mriera/bloglist-backend/internal/logger"
	"github.com/mriera/bloglist-backend/internal/metrics"
	"github.com/mriera/bloglist-backend/internal/repository/mongodb"
	"github.com/mriera/bloglist-backend/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("connecting to mongodb", "uri", cfg.MongoURI)
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	database := client.Database(cfg.Database)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Error("ensure indexes", "err", err)
		os.Exit(1)
	}

	repos := mongodb.NewRepositories(database)
	tm := auth.NewTokenManager(cfg.JWTSecret)
	userSvc := services.NewUserService(repos.Users, tm)
	blogSvc := services.NewBlogService(repos.Blogs, repos.Users)

	metrics.Init()
	r := api.NewRouter(cfg, userSvc, blogSvc, repos.Users, repos.Blogs)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
