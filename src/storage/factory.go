package storage

import (
	"fmt"

	"cryptoboard/src/helpers"
	"cryptoboard/src/interfaces"
	"cryptoboard/src/logger"
	"cryptoboard/src/models"
)

// NewSnapshotStore picks the store for storage.db_type and initializes it.
func NewSnapshotStore(cfg *models.MConfig, log *logger.Logger) (interfaces.ISnapshotStore, error) {
	var store interfaces.ISnapshotStore

	switch cfg.Storage.DBType {
	case "sqlite":
		store = NewSQLiteDB(cfg, log)
	case "postgres":
		store = NewPostgresDB(cfg, log)
	case "", "none":
		return NewNoopStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Storage.DBType)
	}

	if err := store.Initialize(); err != nil {
		return nil, helpers.NewDatabaseError(fmt.Sprintf("initialize %s store", cfg.Storage.DBType), err)
	}
	return store, nil
}
