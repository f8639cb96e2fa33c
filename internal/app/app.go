// Package app opens the collaborators described by a Config and assembles
// the services shared by the HTTP server and the folioctl CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/morphofolio/backend/internal/catalog"
	"github.com/morphofolio/backend/internal/config"
	"github.com/morphofolio/backend/internal/repository"
	"github.com/morphofolio/backend/internal/service"
)

// Store is what the app needs from a message repository.
type Store interface {
	repository.DB
	repository.MessageRepository
}

// App holds the opened collaborators and the services built on them.
type App struct {
	Config   *config.Config
	Repo     Store
	Cache    repository.SnapshotCache // nil when Redis is not configured
	Catalog  *catalog.Catalog
	Messages *service.MessageStore
	Contact  service.ContactService

	closers []func() error
}

// Open connects to the configured database and optional Redis cache and
// loads the project catalog. Callers must Close the returned App.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	cat, err := openCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	a.Catalog = cat

	repo, closeRepo, err := openRepository(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a.Repo = repo
	a.closers = append(a.closers, closeRepo)

	if cfg.Redis.Addr != "" {
		client, err := repository.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// The cache only backs first-load fallbacks, so run without it.
			slog.Warn("snapshot cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			a.Cache = repository.NewRedisSnapshotCache(client, cfg.Redis.SnapshotTTL)
			a.closers = append(a.closers, client.Close)
		}
	}

	if a.Cache != nil {
		a.Messages = service.NewMessageStoreWithCache(repo, a.Cache)
	} else {
		a.Messages = service.NewMessageStore(repo)
	}
	a.Contact = service.NewContactService(repo)
	return a, nil
}

// Close releases every opened collaborator, most recent first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default()
	}
	cat, err := catalog.Load(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Path, err)
	}
	return cat, nil
}

func openRepository(ctx context.Context, cfg config.DatabaseConfig) (Store, func() error, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		repo, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using sqlite message store", "path", cfg.SQLitePath)
		return repo, repo.Close, nil
	case config.DriverPostgres, "":
		pool, err := repository.NewPool(ctx, cfg.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		slog.Info("using postgres message store")
		return repository.NewPgMessageRepository(pool), func() error { pool.Close(); return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
