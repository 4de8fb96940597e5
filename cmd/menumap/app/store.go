package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/menumap/internal/store"
	"github.com/agentstation/menumap/internal/store/memory"
	"github.com/agentstation/menumap/internal/store/postgres"
	"github.com/agentstation/menumap/internal/store/sqlite"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
)

// openStore opens the configured catalog store backend.
func openStore(ctx context.Context, config *Config) (store.Store, error) {
	switch config.StoreBackend {
	case constants.BackendSQLite:
		if config.StorePath != sqlite.MemoryPath {
			if err := os.MkdirAll(filepath.Dir(config.StorePath), constants.DirPermissions); err != nil {
				return nil, errors.NewStorageError("open", constants.BackendSQLite, err)
			}
		}
		s, err := sqlite.Open(config.StorePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.BackendPostgres:
		s, err := postgres.Open(ctx, config.StoreDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.BackendMemory:
		return memory.New(), nil
	default:
		return nil, errors.NewConfigError("store", "unknown backend "+config.StoreBackend, nil)
	}
}
