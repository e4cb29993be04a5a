package storage

import (
	"database/sql"
	"fmt"
	"strconv"

	"cryptoboard/src/logger"
	"cryptoboard/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
	q      snapshotSQL
}

// -----------------------------------------------------------------------------

// NewPostgresDB keeps every table in a schema named after the application.
func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) *PostgresDB {
	schema := cfg.Name
	return &PostgresDB{
		Config: cfg,
		Schema: schema,
		Logger: log,
		q: snapshotSQL{
			table: func(name string) string { return fmt.Sprintf(`"%s"."%s"`, schema, name) },
			ph:    func(n int) string { return "$" + strconv.Itoa(n) },
		},
	}
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			created_at BIGINT NOT NULL,
			symbol TEXT,
			primary_granularity INTEGER,
			base TEXT,
			quote TEXT,
			cross_granularity INTEGER
		);`, d.q.table("snapshots")),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			snapshot_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			time BIGINT NOT NULL,
			open DOUBLE PRECISION,
			high DOUBLE PRECISION,
			low DOUBLE PRECISION,
			close DOUBLE PRECISION,
			volume DOUBLE PRECISION,
			vwap DOUBLE PRECISION,
			change DOUBLE PRECISION,
			PRIMARY KEY (snapshot_id, seq)
		);`, d.q.table("snapshot_primary")),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			snapshot_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			time BIGINT NOT NULL,
			usd_volume DOUBLE PRECISION,
			PRIMARY KEY (snapshot_id, seq)
		);`, d.q.table("snapshot_cross")),
	}

	for _, stmt := range stmts {
		if _, err := d.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create postgres tables: %w", err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveSnapshot(snap models.MSnapshot) error {
	if err := d.q.save(d.DB, snap); err != nil {
		return err
	}
	d.Logger.Info("Archived snapshot %s (%d primary, %d cross rows)", snap.ID, len(snap.Primary), len(snap.Cross))
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) ListSnapshots(limit int) ([]models.MSnapshot, error) {
	return d.q.list(d.DB, limit)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) LoadSnapshot(id string) (models.MSnapshot, error) {
	return d.q.load(d.DB, id)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
