package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"raceplanner/internal/config"
	"raceplanner/internal/database"
	"raceplanner/internal/repository"
	"raceplanner/internal/service"
	"raceplanner/internal/storage"
)

type App struct {
	DB       *database.DB
	Sessions storage.SessionStore
	Repo     *repository.Repository
	Services *service.Service
}

// NewApp connects the database and the session store and wires repositories and services.
// An empty REDIS_URL runs without token revocation.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var sessions storage.SessionStore
	if cfg.Redis.URL == "" {
		logrus.Warn("REDIS_URL is empty, logout will not revoke tokens")
	} else {
		store, err := storage.NewRedisSessionStore(cfg.Redis.URL)
		if err != nil {
			db.CloseDB()
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			store.Close()
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logrus.Info("connected to Redis")
		sessions = store
	}

	repo := repository.NewRepository(db.DB)

	return &App{
		DB:       db,
		Sessions: sessions,
		Repo:     repo,
		Services: service.NewService(repo, cfg, sessions),
	}, nil
}

func (a *App) Close() {
	if a.Sessions != nil {
		if err := a.Sessions.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close session store")
		}
	}
	if err := a.DB.CloseDB(); err != nil {
		logrus.WithError(err).Warn("failed to close database")
	}
}
