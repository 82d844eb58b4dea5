// Seeds the database with the root/root development user so a fresh
// environment has an account to log in with.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/mriera/bloglist-backend/internal/apperr"
	"github.com/mriera/bloglist-backend/internal/auth"
	"github.com/mriera/bloglist-backend/internal/config"
	"github.com/mriera/bloglist-backend/internal/db"
	"github.com/mriera/bloglist-backend/internal/logger"
	"github.com/mriera/bloglist-backend/internal/models"
	"github.com/mriera/bloglist-backend/internal/repository/mongodb"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	database := client.Database(cfg.Database)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Error("ensure indexes", "err", err)
		os.Exit(1)
	}

	users := mongodb.NewUsers(database)
	if _, err := users.GetByUsername(ctx, "root"); err == nil {
		log.Info("root user already present")
		return
	} else if !errors.Is(err, apperr.ErrNotFound) {
		log.Error("lookup root user", "err", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword("root")
	if err != nil {
		log.Error("hash password", "err", err)
		os.Exit(1)
	}
	u, err := users.Create(ctx, models.User{
		Username:     "root",
		Name:         "root",
		PasswordHash: hash,
	})
	if err != nil {
		log.Error("create root user", "err", err)
		os.Exit(1)
	}
	log.Info("seeded root user", "id", u.ID.Hex())
}
