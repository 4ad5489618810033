package providers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/config"
	"github.com/wardrobeapp/wardrobe-server/internal/logger"
	"github.com/wardrobeapp/wardrobe-server/internal/sse"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
	"github.com/wardrobeapp/wardrobe-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), sseShutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// BlobStore is a blob store that can also enumerate its keys.
type BlobStore interface {
	store.Blobs
	Keys(ctx context.Context) ([]string, error)
}

var (
	_ BlobStore = (*store.Store)(nil)
	_ BlobStore = (*sqlite.Store)(nil)
)

// StoreHandle wraps the blob store with shutdown capability.
type StoreHandle struct {
	BlobStore
	Backend string
	Path    string
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured blob store backend under the data path.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	blobs, path, err := OpenBlobStore(cfg.Storage.Backend, cfg.Storage.DataPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "backend", cfg.Storage.Backend, "path", path)

	return &StoreHandle{BlobStore: blobs, Backend: cfg.Storage.Backend, Path: path}, nil
}

// OpenBlobStore opens the blob store for backend inside dataPath, creating
// the directory if needed, and returns it with the database path. The seed
// and dbinspect commands open the store the same way as the server.
func OpenBlobStore(backend, dataPath string, logger *slog.Logger) (BlobStore, string, error) {
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, "", fmt.Errorf("create data directory: %w", err)
	}

	switch backend {
	case config.BackendSQLite:
		path := filepath.Join(dataPath, "wardrobe.db")
		db, err := sqlite.Open(path, logger)
		if err != nil {
			return nil, "", err
		}
		return db, path, nil
	case config.BackendBadger, "":
		path := filepath.Join(dataPath, "db")
		db, err := store.New(path, logger)
		if err != nil {
			return nil, "", err
		}
		return db, path, nil
	default:
		return nil, "", fmt.Errorf("unknown storage backend %q", backend)
	}
}

// ProvidePlanStore provides the plan store, loaded from the blob store.
func ProvidePlanStore(i do.Injector) (*store.PlanStore, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	plans := store.NewPlanStore(storeHandle.BlobStore, cfg.Planner.Location, log.Logger)
	if err := plans.Load(context.Background()); err != nil {
		return nil, err
	}
	return plans, nil
}

// ProvideItemStore provides the item store, loaded from the blob store. Item
// deletes cascade into the plan store.
func ProvideItemStore(i do.Injector) (*store.ItemStore, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	plans := do.MustInvoke[*store.PlanStore](i)
	log := do.MustInvoke[*logger.Logger](i)

	items := store.NewItemStore(storeHandle.BlobStore, plans, log.Logger)
	if err := items.Load(context.Background()); err != nil {
		return nil, err
	}

	log.Info("Wardrobe loaded",
		"items", items.Len(),
		"plans", len(plans.List()),
	)
	return items, nil
}
