package storage

import "cryptoboard/src/models"

// NoopStore is used when no snapshot database is configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (NoopStore) Initialize() error                               { return nil }
func (NoopStore) SaveSnapshot(_ models.MSnapshot) error           { return nil }
func (NoopStore) ListSnapshots(_ int) ([]models.MSnapshot, error) { return nil, nil }
func (NoopStore) LoadSnapshot(_ string) (models.MSnapshot, error) {
	return models.MSnapshot{}, ErrSnapshotNotFound
}
func (NoopStore) Close() error { return nil }
