// Package logbook persists decoded jump summaries in a local sqlite file.
package logbook

import (
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"

	protrack "protrack-analyzer"
)

// ErrDuplicate is returned when a (serial number, jump number) pair is
// already recorded.
var ErrDuplicate = errors.New("logbook: jump already recorded")

// Logbook wraps the sqlite database holding jump rows.
type Logbook struct {
	*sql.DB
}

// Open opens or creates the logbook database at path.
func Open(path string) (*Logbook, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS jumps (
			serial_number TEXT NOT NULL,
			jump_number INTEGER NOT NULL,
			jumped_at TIMESTAMP,
			layout TEXT,
			exit_altitude_m INTEGER,
			deployment_altitude_m INTEGER,
			freefall_time_s INTEGER,
			avg_speed_ms REAL,
			max_speed_ms REAL,
			sample_count INTEGER,
			deployment_index INTEGER,
			imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (serial_number, jump_number)
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Logbook{db}, nil
}

// AddJump inserts one decoded jump. A jump already present for the same
// device serial and jump number yields ErrDuplicate and leaves the stored
// row untouched.
func (l *Logbook) AddJump(a *protrack.Analysis) error {
	res, err := l.Exec(`
		INSERT OR IGNORE INTO jumps (
			serial_number, jump_number, jumped_at, layout,
			exit_altitude_m, deployment_altitude_m, freefall_time_s,
			avg_speed_ms, max_speed_ms, sample_count, deployment_index
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.SerialNumber, a.JumpNumber, a.Timestamp, a.Layout,
		a.ExitAltitudeMeters, a.DeploymentAltitudeMeters, a.FreefallTimeSeconds,
		a.FreefallAvgSpeedMps, a.FreefallMaxSpeedMps, a.SampleCount, a.DeploymentIndex,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDuplicate
	}
	return nil
}

// HasJump reports whether a jump is already recorded.
func (l *Logbook) HasJump(serial string, jumpNumber int) (bool, error) {
	var count int
	err := l.QueryRow(
		"SELECT COUNT(*) FROM jumps WHERE serial_number = ? AND jump_number = ?",
		serial, jumpNumber,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// JumpCount returns the number of recorded jumps.
func (l *Logbook) JumpCount() (int, error) {
	var count int
	if err := l.QueryRow("SELECT COUNT(*) FROM jumps").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
