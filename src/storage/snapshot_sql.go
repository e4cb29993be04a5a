package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cryptoboard/src/models"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// -----------------------------------------------------------------------------

// snapshotSQL holds the statements shared by the sqlite and postgres stores.
// table qualifies a table name; ph renders the n-th (1-based) placeholder.
type snapshotSQL struct {
	table func(name string) string
	ph    func(n int) string
}

// -----------------------------------------------------------------------------

func (q snapshotSQL) placeholders(from, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = q.ph(from + i)
	}
	return strings.Join(parts, ", ")
}

// -----------------------------------------------------------------------------

func (q snapshotSQL) save(db *sql.DB, snap models.MSnapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(fmt.Sprintf(`
		INSERT INTO %s (id, created_at, symbol, primary_granularity, base, quote, cross_granularity)
		VALUES (%s)
	`, q.table("snapshots"), q.placeholders(1, 7)),
		snap.ID, snap.CreatedAt.UTC().UnixMilli(), snap.Symbol, snap.PrimaryGranularity,
		snap.Base, snap.Quote, snap.CrossGranularity)
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snap.ID, err)
	}

	primaryStmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s (snapshot_id, seq, time, open, high, low, close, volume, vwap, change)
		VALUES (%s)
	`, q.table("snapshot_primary"), q.placeholders(1, 10)))
	if err != nil {
		return err
	}
	defer primaryStmt.Close()

	for i, r := range snap.Primary {
		_, err := primaryStmt.Exec(snap.ID, i, r.Time.Unix(),
			nullable(r.Open), nullable(r.High), nullable(r.Low), nullable(r.Close),
			nullable(r.Volume), nullable(r.VWAP), nullable(r.Change))
		if err != nil {
			return fmt.Errorf("insert primary row: %w", err)
		}
	}

	crossStmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s (snapshot_id, seq, time, usd_volume)
		VALUES (%s)
	`, q.table("snapshot_cross"), q.placeholders(1, 4)))
	if err != nil {
		return err
	}
	defer crossStmt.Close()

	for i, r := range snap.Cross {
		if _, err := crossStmt.Exec(snap.ID, i, r.Time.Unix(), nullable(r.UsdVolume)); err != nil {
			return fmt.Errorf("insert cross row: %w", err)
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (q snapshotSQL) list(db *sql.DB, limit int) ([]models.MSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(fmt.Sprintf(`
		SELECT id, created_at, symbol, primary_granularity, base, quote, cross_granularity
		FROM %s ORDER BY id DESC LIMIT %s
	`, q.table("snapshots"), q.ph(1)), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MSnapshot
	for rows.Next() {
		snap, err := scanHeader(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------

func (q snapshotSQL) load(db *sql.DB, id string) (models.MSnapshot, error) {
	row := db.QueryRow(fmt.Sprintf(`
		SELECT id, created_at, symbol, primary_granularity, base, quote, cross_granularity
		FROM %s WHERE id = %s
	`, q.table("snapshots"), q.ph(1)), id)

	snap, err := scanHeader(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MSnapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return models.MSnapshot{}, err
	}

	// Primary rows
	pRows, err := db.Query(fmt.Sprintf(`
		SELECT time, open, high, low, close, volume, vwap, change
		FROM %s WHERE snapshot_id = %s ORDER BY seq
	`, q.table("snapshot_primary"), q.ph(1)), id)
	if err != nil {
		return models.MSnapshot{}, err
	}
	defer pRows.Close()

	snap.Primary = []models.MDerivedBar{}
	for pRows.Next() {
		var ts int64
		var open, high, low, closeVal, volume, vwap, change sql.NullFloat64
		if err := pRows.Scan(&ts, &open, &high, &low, &closeVal, &volume, &vwap, &change); err != nil {
			return models.MSnapshot{}, err
		}
		snap.Primary = append(snap.Primary, models.MDerivedBar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   fromNullable(open),
			High:   fromNullable(high),
			Low:    fromNullable(low),
			Close:  fromNullable(closeVal),
			Volume: fromNullable(volume),
			VWAP:   fromNullable(vwap),
			Change: fromNullable(change),
		})
	}
	if err := pRows.Err(); err != nil {
		return models.MSnapshot{}, err
	}

	// Cross rows
	cRows, err := db.Query(fmt.Sprintf(`
		SELECT time, usd_volume FROM %s WHERE snapshot_id = %s ORDER BY seq
	`, q.table("snapshot_cross"), q.ph(1)), id)
	if err != nil {
		return models.MSnapshot{}, err
	}
	defer cRows.Close()

	snap.Cross = []models.MUsdVolume{}
	for cRows.Next() {
		var ts int64
		var usd sql.NullFloat64
		if err := cRows.Scan(&ts, &usd); err != nil {
			return models.MSnapshot{}, err
		}
		snap.Cross = append(snap.Cross, models.MUsdVolume{Time: time.Unix(ts, 0).UTC(), UsdVolume: fromNullable(usd)})
	}
	return snap, cRows.Err()
}

// -----------------------------------------------------------------------------

type scanner interface {
	Scan(dest ...any) error
}

func scanHeader(s scanner) (models.MSnapshot, error) {
	var snap models.MSnapshot
	var createdMs int64
	err := s.Scan(&snap.ID, &createdMs, &snap.Symbol, &snap.PrimaryGranularity,
		&snap.Base, &snap.Quote, &snap.CrossGranularity)
	if err != nil {
		return models.MSnapshot{}, err
	}
	snap.CreatedAt = time.UnixMilli(createdMs).UTC()
	return snap, nil
}

// -----------------------------------------------------------------------------

// nullable stores NaN and ±Inf as NULL.
func nullable(f models.MFloat) sql.NullFloat64 {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNullable(n sql.NullFloat64) models.MFloat {
	if !n.Valid {
		return models.MFloat(math.NaN())
	}
	return models.MFloat(n.Float64)
}
