package interfaces

import "cryptoboard/src/models"

// -----------------------------------------------------------------------------
// ISnapshotStore archives rendered dashboards. Page renders never read from
// it: it is a history, not a cache.
// -----------------------------------------------------------------------------

type ISnapshotStore interface {

	// Initialize opens the database and creates missing tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveSnapshot writes one render with both derived tables.
	SaveSnapshot(snap models.MSnapshot) error

	// -----------------------------------------------------------------------------

	// ListSnapshots returns the newest snapshots first, without table rows.
	ListSnapshots(limit int) ([]models.MSnapshot, error)

	// -----------------------------------------------------------------------------

	// LoadSnapshot returns one snapshot with its rows, or storage.ErrSnapshotNotFound.
	LoadSnapshot(id string) (models.MSnapshot, error)

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
