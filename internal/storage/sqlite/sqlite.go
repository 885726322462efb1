// Package sqlite implements the optional post-run sample archive. The
// AgriScan firmware keeps every sample row in a local SQLite database;
// agriview preserves that archive so successive analyzer runs accumulate
// a queryable history alongside the one-shot reports.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/agriscan/agriview/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	archived_at INTEGER NOT NULL,
	source_file TEXT,
	record_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	zone TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	tick INTEGER,
	elapsed_min REAL,
	theta REAL,
	psi_kpa REAL,
	aw_mm REAL,
	raw INTEGER,
	temp_c REAL,
	confidence REAL,
	drying_rate REAL,
	regime TEXT,
	status TEXT,
	urgency TEXT,
	phase TEXT,
	PRIMARY KEY (run_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_samples_timestamp ON samples(timestamp);
`

// Archive stores telemetry records in a local SQLite database.
type Archive struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// New opens (and if needed initializes) the archive database at path.
func New(path string, logger *zap.SugaredLogger) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping archive database: %w", err)
	}

	// WAL keeps the archive usable if a run is interrupted mid-batch.
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set archive pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}

	return &Archive{db: db, logger: logger}, nil
}

// ArchiveRun inserts the full record collection as one run, in a single
// transaction. An empty runID gets a generated UUID; the effective run id
// is returned either way.
func (a *Archive) ArchiveRun(runID, sourceFile string, records []types.TelemetryRecord) (string, error) {
	if runID == "" {
		runID = uuid.NewString()
	}

	tx, err := a.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, archived_at, source_file, record_count) VALUES (?, ?, ?, ?)`,
		runID, time.Now().Unix(), sourceFile, len(records),
	); err != nil {
		return "", fmt.Errorf("failed to insert run row: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO samples
		(run_id, seq, zone, timestamp, tick, elapsed_min, theta, psi_kpa, aw_mm,
		 raw, temp_c, confidence, drying_rate, regime, status, urgency, phase)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for seq := range records {
		rec := &records[seq]
		var tick interface{}
		if rec.Tick != nil {
			tick = *rec.Tick
		}
		if _, err := stmt.Exec(
			runID, seq, rec.Zone, rec.Time, tick, rec.Elapsed(),
			rec.Theta, rec.PsiKPa, rec.AWmm, rec.Raw,
			rec.Temp.Float(), rec.Confidence.Float(), rec.DryingRate.Float(),
			rec.Regime, rec.Status, rec.Urgency, rec.Phase,
		); err != nil {
			return "", fmt.Errorf("failed to insert sample %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit archive transaction: %w", err)
	}

	if a.logger != nil {
		a.logger.Infof("archived %d samples as run %s", len(records), runID)
	}
	return runID, nil
}

// RecentSamples returns the n most recent samples across all runs, newest
// first.
func (a *Archive) RecentSamples(n int) ([]types.TelemetryRecord, error) {
	rows, err := a.db.Query(`
		SELECT zone, timestamp, theta, psi_kpa, aw_mm, raw, regime, status, urgency, phase
		FROM samples ORDER BY timestamp DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent samples: %w", err)
	}
	defer rows.Close()

	var out []types.TelemetryRecord
	for rows.Next() {
		var rec types.TelemetryRecord
		if err := rows.Scan(&rec.Zone, &rec.Time, &rec.Theta, &rec.PsiKPa, &rec.AWmm,
			&rec.Raw, &rec.Regime, &rec.Status, &rec.Urgency, &rec.Phase); err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteOlderThan removes runs (and their samples) archived more than the
// given number of days ago. Returns the number of runs removed.
func (a *Archive) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Unix()

	tx, err := a.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin retention sweep: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM samples WHERE run_id IN (SELECT run_id FROM runs WHERE archived_at < ?)`,
		cutoff,
	); err != nil {
		return 0, fmt.Errorf("failed to delete expired samples: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM runs WHERE archived_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired runs: %w", err)
	}
	removed, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit retention sweep: %w", err)
	}
	return removed, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
