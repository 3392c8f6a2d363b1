// Package recorder stores simulated trajectories in SQLite.
package recorder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/lao-tseu-is-alive/go-torpedo-simulation/pkg/simulation"
)

// DB wraps a SQLite connection holding any number of recorded runs.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		scene TEXT NOT NULL,
		entities INTEGER NOT NULL,
		obstacles INTEGER NOT NULL,
		frame_rate REAL NOT NULL,
		parameters_json TEXT NOT NULL,
		started_at TEXT NOT NULL,
		frames INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL,
		frame INTEGER NOT NULL,
		entity INTEGER NOT NULL,
		name TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		z REAL NOT NULL,
		vx REAL NOT NULL,
		vy REAL NOT NULL,
		vz REAL NOT NULL,
		phase TEXT NOT NULL,
		PRIMARY KEY (run_id, frame, entity)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		frame INTEGER NOT NULL,
		entity INTEGER NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		z REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, frame);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunMeta describes a run when it starts recording.
type RunMeta struct {
	Scene      string
	Entities   int
	Obstacles  int
	FrameRate  float64
	Parameters simulation.Parameters
}

// Run is one row of the runs table.
type Run struct {
	ID             string  `db:"id"`
	Scene          string  `db:"scene"`
	Entities       int     `db:"entities"`
	Obstacles      int     `db:"obstacles"`
	FrameRate      float64 `db:"frame_rate"`
	ParametersJSON string  `db:"parameters_json"`
	StartedAt      string  `db:"started_at"`
	Frames         int     `db:"frames"`
}

// Sample is the state of one presented entity at one frame.
type Sample struct {
	RunID  string  `db:"run_id"`
	Frame  int     `db:"frame"`
	Entity int     `db:"entity"`
	Name   string  `db:"name"`
	X      float64 `db:"x"`
	Y      float64 `db:"y"`
	Z      float64 `db:"z"`
	VX     float64 `db:"vx"`
	VY     float64 `db:"vy"`
	VZ     float64 `db:"vz"`
	Phase  string  `db:"phase"`
}

// Event kinds.
const (
	EventLaunch  = "launch"
	EventArrival = "arrival"
)

type Event struct {
	Frame  int     `db:"frame"`
	Entity int     `db:"entity"`
	Name   string  `db:"name"`
	Kind   string  `db:"kind"`
	X      float64 `db:"x"`
	Y      float64 `db:"y"`
	Z      float64 `db:"z"`
}

// Begin registers a new run and returns the recording sink for it.
func (db *DB) Begin(meta RunMeta) (*Recording, error) {
	params, err := json.Marshal(meta.Parameters)
	if err != nil {
		return nil, fmt.Errorf("encode parameters: %w", err)
	}
	id := uuid.New()
	_, err = db.conn.Exec(`INSERT INTO runs
		(id, scene, entities, obstacles, frame_rate, parameters_json, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), meta.Scene, meta.Entities, meta.Obstacles, meta.FrameRate,
		string(params), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &Recording{db: db, ID: id}, nil
}

// Recording appends the frames of one run. It is not safe for concurrent use.
type Recording struct {
	db     *DB
	ID     uuid.UUID
	frames int
}

// Consume writes the visible entities and the edge events of f in one transaction.
// Entities on their arrival frame are recorded too, at the snapped position.
func (r *Recording) Consume(f simulation.Frame) error {
	tx, err := r.db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO samples
		(run_id, frame, entity, name, x, y, z, vx, vy, vz, phase)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	id := r.ID.String()
	for _, e := range f.Entities {
		if !e.Visible && !e.Arrived {
			continue
		}
		_, err := stmt.Exec(id, f.Index, e.Index, e.Name,
			e.Position.X, e.Position.Y, e.Position.Z,
			e.Velocity.X, e.Velocity.Y, e.Velocity.Z,
			e.Phase.String(),
		)
		if err != nil {
			return fmt.Errorf("insert sample %s@%d: %w", e.Name, f.Index, err)
		}
	}

	for _, e := range f.Events() {
		kinds := make([]string, 0, 2)
		if e.Launched {
			kinds = append(kinds, EventLaunch)
		}
		if e.Arrived {
			kinds = append(kinds, EventArrival)
		}
		for _, kind := range kinds {
			_, err := tx.Exec(`INSERT INTO events (run_id, frame, entity, name, kind, x, y, z)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				id, f.Index, e.Index, e.Name, kind, e.Position.X, e.Position.Y, e.Position.Z,
			)
			if err != nil {
				return fmt.Errorf("insert event: %w", err)
			}
		}
	}

	r.frames++
	if _, err := tx.Exec("UPDATE runs SET frames = ? WHERE id = ?", r.frames, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Runs lists every recorded run, oldest first.
func (db *DB) Runs() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, "SELECT * FROM runs ORDER BY started_at, id")
	return runs, err
}

// Samples returns the trajectory samples of a run ordered by frame then entity.
func (db *DB) Samples(runID uuid.UUID) ([]Sample, error) {
	var samples []Sample
	err := db.conn.Select(&samples,
		"SELECT * FROM samples WHERE run_id = ? ORDER BY frame, entity",
		runID.String(),
	)
	return samples, err
}

// Events returns the launch and arrival events of a run in order.
func (db *DB) Events(runID uuid.UUID) ([]Event, error) {
	var events []Event
	err := db.conn.Select(&events,
		"SELECT frame, entity, name, kind, x, y, z FROM events WHERE run_id = ? ORDER BY id",
		runID.String(),
	)
	return events, err
}
