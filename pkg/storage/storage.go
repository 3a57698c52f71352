// Package storage persists catalog snapshots so a query result can be
// reused across runs without hitting the TAP service again.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pierregab/HPMS/pkg/catalog"
)

// keepSnapshots bounds how many fetches stay on disk; older ones are
// pruned on every save.
const keepSnapshots = 5

// ErrNoSnapshot is returned by LoadLatest when nothing has been cached yet.
var ErrNoSnapshot = errors.New("no cached snapshot")

type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the snapshot database at path.
func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS snapshots (
  id          INTEGER PRIMARY KEY,
  fetched_at  INTEGER NOT NULL,
  source      TEXT NOT NULL,
  star_count  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS stars (
  snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
  position    INTEGER NOT NULL,
  identifier  TEXT NOT NULL,
  ra_deg      REAL NOT NULL,
  dec_deg     REAL NOT NULL,
  pmra_masyr  REAL NOT NULL,
  pmdec_masyr REAL NOT NULL,
  magnitude   REAL NOT NULL,
  PRIMARY KEY (snapshot_id, position)
);
CREATE INDEX IF NOT EXISTS idx_stars_snapshot ON stars(snapshot_id);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// SaveSnapshot stores one fetch result as a new snapshot and prunes old
// snapshots beyond the retention limit. The catalog order of records is
// preserved through the position column so cached runs stay reproducible.
func (d *DB) SaveSnapshot(ctx context.Context, source string, fetchedAt time.Time, records []catalog.StarRecord) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots(fetched_at, source, star_count) VALUES(?,?,?)`,
		fetchedAt.UTC().Unix(), source, len(records))
	if err != nil {
		return err
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, r := range records {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO stars(snapshot_id, position, identifier, ra_deg, dec_deg, pmra_masyr, pmdec_masyr, magnitude)
			 VALUES(?,?,?,?,?,?,?,?)`,
			snapshotID, i, r.Identifier, r.RARefDeg, r.DecRefDeg, r.PMRARaw, r.PMDecRaw, r.Magnitude)
		if err != nil {
			return err
		}
	}

	// Prune: keep only the newest snapshots.
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM stars WHERE snapshot_id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
		keepSnapshots); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
		keepSnapshots); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadLatest returns the most recent snapshot's records in their original
// catalog order, with the time they were fetched.
func (d *DB) LoadLatest(ctx context.Context) ([]catalog.StarRecord, time.Time, error) {
	var (
		snapshotID int64
		fetchedSec int64
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT id, fetched_at FROM snapshots ORDER BY id DESC LIMIT 1`).
		Scan(&snapshotID, &fetchedSec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	fetchedAt := time.Unix(fetchedSec, 0).UTC()

	rows, err := d.sql.QueryContext(ctx,
		`SELECT identifier, ra_deg, dec_deg, pmra_masyr, pmdec_masyr, magnitude
		 FROM stars WHERE snapshot_id = ? ORDER BY position`, snapshotID)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var records []catalog.StarRecord
	for rows.Next() {
		var r catalog.StarRecord
		if err := rows.Scan(&r.Identifier, &r.RARefDeg, &r.DecRefDeg, &r.PMRARaw, &r.PMDecRaw, &r.Magnitude); err != nil {
			return nil, time.Time{}, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	return records, fetchedAt, nil
}

// Info summarizes the cache: snapshot count and the newest fetch time.
func (d *DB) Info(ctx context.Context) (snapshots int, latest time.Time, err error) {
	err = d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&snapshots)
	if err != nil || snapshots == 0 {
		return snapshots, time.Time{}, err
	}
	var latestSec int64
	err = d.sql.QueryRowContext(ctx, `SELECT fetched_at FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&latestSec)
	return snapshots, time.Unix(latestSec, 0).UTC(), err
}

// Clear removes every cached snapshot.
func (d *DB) Clear(ctx context.Context) error {
	if _, err := d.sql.ExecContext(ctx, `DELETE FROM stars`); err != nil {
		return err
	}
	_, err := d.sql.ExecContext(ctx, `DELETE FROM snapshots`)
	return err
}
