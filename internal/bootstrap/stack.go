package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/learnpath/internal/catalog"
	"github.com/at-ishikawa/learnpath/internal/config"
	"github.com/at-ishikawa/learnpath/internal/database"
	"github.com/at-ishikawa/learnpath/internal/progress"
)

// OpenDatabase connects to the SQL database of the configured storage driver.
// It returns nil for the memory and yaml drivers.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		delay := time.Duration(cfg.Database.ReadyDelayMs) * time.Millisecond
		if err := database.WaitReady(ctx, db, cfg.Database.ReadyAttempts, delay); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database.WaitReady() > %w", err)
		}
		return db, nil
	case config.StorageDriverSQLite:
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("database.OpenSQLite() > %w", err)
		}
		return db, nil
	default:
		return nil, nil
	}
}

// OpenStore builds the progress store of the configured driver and registers its cleanup on app.
// SQL schemas are migrated before the store is returned.
func OpenStore(ctx context.Context, app *App, cfg *config.Config) (progress.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory, "":
		return progress.NewMemoryStore(), nil
	case config.StorageDriverYAML:
		store, err := progress.NewYAMLStore(cfg.Storage.YAMLDirectory)
		if err != nil {
			return nil, fmt.Errorf("progress.NewYAMLStore() > %w", err)
		}
		return store, nil
	case config.StorageDriverMySQL, config.StorageDriverSQLite:
		db, err := OpenDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.AddShutdownHook(func(context.Context) error {
			return db.Close()
		})
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		store, err := progress.NewDBStore(db)
		if err != nil {
			return nil, fmt.Errorf("progress.NewDBStore() > %w", err)
		}
		slog.Default().Info("Opened database store", "driver", db.DriverName())
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// Catalog is the content catalog together with its file-backed implementation, when there is one.
type Catalog struct {
	catalog.Catalog
	// Files is set when the catalog is read from a directory and can be watched.
	Files *catalog.YAMLCatalog
}

// OpenCatalog builds the remote catalog client when a URL is configured and reads the directory otherwise.
func OpenCatalog(cfg config.CatalogConfig) (Catalog, error) {
	if cfg.URL != "" {
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		return Catalog{Catalog: catalog.NewHTTPCatalog(cfg.URL, timeout)}, nil
	}

	files, err := catalog.NewYAMLCatalog(filepath.Clean(cfg.Directory))
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog.NewYAMLCatalog() > %w", err)
	}
	return Catalog{Catalog: files, Files: files}, nil
}
