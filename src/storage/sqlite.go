package storage

import (
	"database/sql"
	"fmt"

	"cryptoboard/src/logger"
	"cryptoboard/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
	q      snapshotSQL
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) *SQLiteDB {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
		q: snapshotSQL{
			table: func(name string) string { return name },
			ph:    func(int) string { return "?" },
		},
	}
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) createTables() error {
	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			symbol TEXT,
			primary_granularity INTEGER,
			base TEXT,
			quote TEXT,
			cross_granularity INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS snapshot_primary (
			snapshot_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			time INTEGER NOT NULL,
			open REAL,
			high REAL,
			low REAL,
			close REAL,
			volume REAL,
			vwap REAL,
			change REAL,
			PRIMARY KEY (snapshot_id, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS snapshot_cross (
			snapshot_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			time INTEGER NOT NULL,
			usd_volume REAL,
			PRIMARY KEY (snapshot_id, seq)
		);`,
	}

	for _, stmt := range stmts {
		if _, err := d.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create sqlite tables: %w", err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SaveSnapshot(snap models.MSnapshot) error {
	if err := d.q.save(d.DB, snap); err != nil {
		return err
	}
	d.Logger.Info("Archived snapshot %s (%d primary, %d cross rows)", snap.ID, len(snap.Primary), len(snap.Cross))
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) ListSnapshots(limit int) ([]models.MSnapshot, error) {
	return d.q.list(d.DB, limit)
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) LoadSnapshot(id string) (models.MSnapshot, error) {
	return d.q.load(d.DB, id)
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
