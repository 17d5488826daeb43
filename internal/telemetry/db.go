// Package telemetry keeps a SQLite log of viewing sessions: which
// configuration ran, for how long, and at what frame rate. It never
// stores trajectory state.
package telemetry

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("telemetry: session not found")

// Session is one run of a live adapter.
type Session struct {
	ID        string
	Adapter   string
	Preset    string
	Strategy  string
	Lines     int
	StartedAt time.Time
	EndedAt   time.Time
	Rendered  uint64
	Skipped   uint64
	MeanFPS   float64
	Diverged  int
}

// Duration is zero for sessions that never finished.
func (s Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

type sessionRow struct {
	ID        string  `db:"id"`
	Adapter   string  `db:"adapter"`
	Preset    string  `db:"preset"`
	Strategy  string  `db:"strategy"`
	Lines     int     `db:"lines"`
	StartedAt int64   `db:"started_at"`
	EndedAt   int64   `db:"ended_at"`
	Rendered  int64   `db:"rendered"`
	Skipped   int64   `db:"skipped"`
	MeanFPS   float64 `db:"mean_fps"`
	Diverged  int     `db:"diverged"`
}

func (r sessionRow) session() Session {
	s := Session{
		ID:        r.ID,
		Adapter:   r.Adapter,
		Preset:    r.Preset,
		Strategy:  r.Strategy,
		Lines:     r.Lines,
		StartedAt: time.UnixMilli(r.StartedAt),
		Rendered:  uint64(r.Rendered),
		Skipped:   uint64(r.Skipped),
		MeanFPS:   r.MeanFPS,
		Diverged:  r.Diverged,
	}
	if r.EndedAt > 0 {
		s.EndedAt = time.UnixMilli(r.EndedAt)
	}
	return s
}

// DB wraps the session database.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func Open(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// one connection so an in-memory database is shared by every query
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		adapter TEXT NOT NULL,
		preset TEXT NOT NULL,
		strategy TEXT NOT NULL,
		lines INTEGER NOT NULL,
		started_at INTEGER NOT NULL,
		ended_at INTEGER NOT NULL DEFAULT 0,
		rendered INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		mean_fps REAL NOT NULL DEFAULT 0,
		diverged INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Begin records a new session and returns it with its ID set.
func (db *DB) Begin(s Session) (Session, error) {
	s.ID = uuid.NewString()
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	_, err := db.conn.NamedExec(`INSERT INTO sessions
		(id, adapter, preset, strategy, lines, started_at)
		VALUES (:id, :adapter, :preset, :strategy, :lines, :started_at)`,
		sessionRow{
			ID:        s.ID,
			Adapter:   s.Adapter,
			Preset:    s.Preset,
			Strategy:  s.Strategy,
			Lines:     s.Lines,
			StartedAt: s.StartedAt.UnixMilli(),
		})
	if err != nil {
		return s, fmt.Errorf("begin session: %w", err)
	}
	return s, nil
}

// Finish stores the closing counters of a session.
func (db *DB) Finish(s Session) error {
	if s.EndedAt.IsZero() {
		s.EndedAt = time.Now()
	}
	res, err := db.conn.Exec(`UPDATE sessions
		SET ended_at = ?, rendered = ?, skipped = ?, mean_fps = ?, diverged = ?
		WHERE id = ?`,
		s.EndedAt.UnixMilli(), int64(s.Rendered), int64(s.Skipped), s.MeanFPS, s.Diverged, s.ID)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, s.ID)
	}
	return nil
}

func (db *DB) Get(id string) (Session, error) {
	var r sessionRow
	err := db.conn.Get(&r, "SELECT * FROM sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Session{}, err
	}
	return r.session(), nil
}

// Recent returns up to limit sessions, newest first.
func (db *DB) Recent(limit int) ([]Session, error) {
	var rows []sessionRow
	if err := db.conn.Select(&rows,
		"SELECT * FROM sessions ORDER BY started_at DESC, id LIMIT ?", limit); err != nil {
		return nil, err
	}
	out := make([]Session, len(rows))
	for i, r := range rows {
		out[i] = r.session()
	}
	return out, nil
}

// Prune deletes all but the newest keep sessions and reports how many
// were removed.
func (db *DB) Prune(keep int) (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM sessions WHERE id NOT IN
		(SELECT id FROM sessions ORDER BY started_at DESC, id LIMIT ?)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
