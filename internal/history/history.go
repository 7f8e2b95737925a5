// Package history persists a per-turn journal of inputs and decisions to a
// SQLite database for post-game replay and analysis.
package history

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/signalsfoundry/transit-planner/model"
)

// Journal wraps a SQLite database holding one row per turn plus one row per
// committed action. Journal failures must never stop planning; callers log
// and move on.
type Journal struct {
	db    *sql.DB
	runID string
}

// Open opens (or creates) the journal database at path and runs migrations.
// runID groups all rows written by this process.
func Open(path, runID string) (*Journal, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	j := &Journal{db: db, runID: runID}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return j, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS turns (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       TEXT NOT NULL,
			turn         INTEGER NOT NULL,
			recorded_at  TEXT NOT NULL,
			budget       INTEGER NOT NULL,
			stations     INTEGER NOT NULL,
			links        INTEGER NOT NULL,
			vehicles     INTEGER NOT NULL,
			action_line  TEXT NOT NULL,
			action_count INTEGER NOT NULL,
			duration_ms  INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_turns_run ON turns(run_id, turn);

		CREATE TABLE IF NOT EXISTS actions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			turn_id    INTEGER NOT NULL REFERENCES turns(id),
			kind       TEXT NOT NULL,
			station_a  INTEGER,
			station_b  INTEGER,
			vehicle_id INTEGER,
			tour       TEXT
		);
	`)
	return err
}

// RecordTurn appends one turn's input summary and committed actions.
func (j *Journal) RecordTurn(turn int, in *model.TurnInput, actions []model.Action, line string, elapsed time.Duration) error {
	res, err := j.db.Exec(
		`INSERT INTO turns (run_id, turn, recorded_at, budget, stations, links, vehicles, action_line, action_count, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.runID, turn, time.Now().UTC().Format(time.RFC3339),
		in.Budget, len(in.Stations), len(in.Links), len(in.Vehicles),
		line, len(actions), elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert turn %d: %w", turn, err)
	}
	turnID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("turn %d row id: %w", turn, err)
	}

	for _, a := range actions {
		if _, err := j.db.Exec(
			`INSERT INTO actions (turn_id, kind, station_a, station_b, vehicle_id, tour)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			turnID, a.Kind.String(), a.A, a.B, a.VehicleID, joinTour(a.Tour),
		); err != nil {
			return fmt.Errorf("insert action for turn %d: %w", turn, err)
		}
	}
	return nil
}

// TurnRecord is one journal row read back for analysis.
type TurnRecord struct {
	Turn        int
	Budget      int
	ActionLine  string
	ActionCount int
	DurationMs  int64
}

// Turns returns the journal rows for a run, oldest first.
func (j *Journal) Turns(runID string) ([]TurnRecord, error) {
	rows, err := j.db.Query(
		`SELECT turn, budget, action_line, action_count, duration_ms
		 FROM turns WHERE run_id = ? ORDER BY turn`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var out []TurnRecord
	for rows.Next() {
		var r TurnRecord
		if err := rows.Scan(&r.Turn, &r.Budget, &r.ActionLine, &r.ActionCount, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("scan turn row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func joinTour(tour []int) string {
	if len(tour) == 0 {
		return ""
	}
	parts := make([]string, len(tour))
	for i, s := range tour {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " ")
}
