package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/Veraticus/tally/internal/tui/viewmodel"
)

// session is one opened ledger: the store, the loaded state and the engine over it.
type session struct {
	store     storage.BlobStore
	engine    *engine.Engine
	formatter *viewmodel.Formatter
	cfg       config.Config
}

// openSession opens the database and loads the ledger. A ledger that cannot
// be read is reported through n and replaced by defaults. Ephemeral sessions
// start empty and are dropped on Close.
func (a *app) openSession(ctx context.Context, n common.Notifier) (*session, error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, err
	}

	var store storage.BlobStore
	if cfg.Ephemeral {
		common.LogDebug("Using in-memory ledger", nil)
		store = storage.NewMemoryStore()
	} else {
		store, err = openDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
	}

	persister := storage.NewPersister(store,
		storage.WithKey(cfg.StorageKey),
		storage.WithNotifier(n))

	state := model.NewState()
	if err := persister.Load(ctx, state); err != nil {
		slog.Warn("Starting with an empty ledger", "error", err)
	}

	return &session{
		store: store,
		engine: engine.New(state, persister,
			engine.WithNotifier(n),
			engine.WithExportFormat(cfg.DateFormat, time.Local)),
		formatter: viewmodel.NewFormatter(cfg.Locale, cfg.Currency, cfg.DateFormat, time.Local),
		cfg:       cfg,
	}, nil
}

func openDatabase(ctx context.Context, path string) (*storage.SQLiteStore, error) {
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to read database: %w", err)
	}
	common.LogDebug("Opened ledger database", common.Fields{"path": store.Path(), "keys": keys})
	return store, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

func (s *session) dashboard() viewmodel.Dashboard {
	return viewmodel.Build(s.engine.Snapshot(), s.engine.Now(), s.formatter)
}

func (s *session) theme() themes.Theme {
	return themes.For(s.engine.Snapshot().DarkMode)
}

// finish maps an effect to the command's exit status.
func finish(eff engine.Effect) error {
	if eff.Unsaved {
		return errUnsaved
	}
	return nil
}
