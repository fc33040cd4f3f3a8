package app

import (
	"fmt"

	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/storage/filestore"
	"github.com/tldr-it-stepankutaj/whodat/internal/storage/memstore"
	"github.com/tldr-it-stepankutaj/whodat/internal/storage/sqlitestore"
)

// Storage is a preference backend that holds resources until closed.
type Storage interface {
	prefs.Storage
	Close() error
}

// OpenStorage opens the backend named by cfg.Storage inside the workspace.
func OpenStorage(cfg Config, ws WorkspaceHandle) (Storage, error) {
	switch cfg.Storage {
	case StorageMemory:
		return memstore.New(), nil
	case StorageFile, "":
		s, err := filestore.New(ws.Path("storage"))
		if err != nil {
			return nil, err
		}
		return s, nil
	case StorageSQLite:
		s, err := sqlitestore.Open(ws.Path("storage", "whodat.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}
