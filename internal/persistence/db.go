// Package persistence provides the SQLite event journal for one meadow session.
// The default DSN is an in-memory database, so nothing outlives the process.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/meadow/internal/engine"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Journal wraps a SQLite connection recording simulation events.
type Journal struct {
	conn    *sqlx.DB
	session string
}

// Open opens a journal at dsn and starts a new session.
func Open(dsn string) (*Journal, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	j := &Journal{conn: conn, session: uuid.NewString()}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := j.SetMeta("session", j.session); err != nil {
		conn.Close()
		return nil, fmt.Errorf("record session: %w", err)
	}

	slog.Debug("journal opened", "dsn", dsn, "session", j.session)
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

// Session returns the ID of the session this journal writes under.
func (j *Journal) Session() string {
	return j.session
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS session_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session, id);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// Record appends one event. It implements engine.EventSink.
func (j *Journal) Record(e engine.Event) error {
	_, err := j.conn.Exec(
		"INSERT INTO events (session, tick, description, category) VALUES (?, ?, ?, ?)",
		j.session, e.Tick, e.Description, e.Category,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// RecentEvents returns up to limit events of this session, oldest first.
func (j *Journal) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := j.conn.Select(&events,
		`SELECT tick, description, category FROM (
			SELECT id, tick, description, category FROM events
			WHERE session = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`,
		j.session, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	return events, nil
}

// CountByCategory returns how many events of each category this session recorded.
func (j *Journal) CountByCategory() (map[string]int, error) {
	var rows []struct {
		Category string `db:"category"`
		N        int    `db:"n"`
	}
	err := j.conn.Select(&rows,
		"SELECT category, COUNT(*) AS n FROM events WHERE session = ? GROUP BY category",
		j.session,
	)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.N
	}
	return counts, nil
}

// SetMeta stores a key-value pair in session metadata.
func (j *Journal) SetMeta(key, value string) error {
	_, err := j.conn.Exec(
		"INSERT OR REPLACE INTO session_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (j *Journal) GetMeta(key string) (string, error) {
	var value string
	err := j.conn.Get(&value, "SELECT value FROM session_meta WHERE key = ?", key)
	return value, err
}
