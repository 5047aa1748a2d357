package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	perrors "github.com/zhubert/sidepanel/internal/errors"
	"github.com/zhubert/sidepanel/internal/history"
	"github.com/zhubert/sidepanel/internal/logger"
	"github.com/zhubert/sidepanel/internal/transcript"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	actor TEXT NOT NULL,
	content TEXT NOT NULL,
	timestamp INTEGER NOT NULL,
	FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, id);
`

// SQLite is a Store backed by a single database file.
type SQLite struct {
	db   *sql.DB
	path string
	now  Clock
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLite(path string, now Clock) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, perrors.StoreOpenFailed(path, err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, perrors.StoreOpenFailed(path, err)
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, perrors.StoreOpenFailed(path, err)
	}

	logger.WithComponent("store").Info("opened sqlite store", "path", path)
	return &SQLite{db: db, path: path, now: now}, nil
}

// Path returns the database file.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) CreateSession(ctx context.Context, title string) (history.SessionSummary, error) {
	sum := history.SessionSummary{
		ID:        newSessionID(),
		Title:     title,
		CreatedAt: s.now().UnixMilli(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, title, created_at) VALUES (?, ?, ?)`,
		sum.ID, sum.Title, sum.CreatedAt)
	if err != nil {
		return history.SessionSummary{}, perrors.StoreQueryFailed("store.CreateSession", err)
	}
	return sum, nil
}

func (s *SQLite) Session(ctx context.Context, id string) (history.SessionSummary, error) {
	var sum history.SessionSummary
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, created_at FROM sessions WHERE id = ?`, id).
		Scan(&sum.ID, &sum.Title, &sum.CreatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return history.SessionSummary{}, perrors.SessionNotFound(id)
	}
	if err != nil {
		return history.SessionSummary{}, perrors.StoreQueryFailed("store.Session", err)
	}
	return sum, nil
}

func (s *SQLite) Sessions(ctx context.Context) ([]history.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, created_at FROM sessions ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, perrors.StoreQueryFailed("store.Sessions", err)
	}
	defer rows.Close()

	var out []history.SessionSummary
	for rows.Next() {
		var sum history.SessionSummary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.CreatedAt); err != nil {
			return nil, perrors.StoreQueryFailed("store.Sessions", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, perrors.StoreQueryFailed("store.Sessions", err)
	}
	return out, nil
}

func (s *SQLite) RenameSession(ctx context.Context, id, title string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET title = ? WHERE id = ?`, title, id)
	if err != nil {
		return perrors.StoreQueryFailed("store.RenameSession", err)
	}
	return requireRow(res, id)
}

func (s *SQLite) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return perrors.StoreQueryFailed("store.DeleteSession", err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	logger.WithSession(id).Info("session deleted")
	return nil
}

func (s *SQLite) AppendMessage(ctx context.Context, sessionID string, msg transcript.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, actor, content, timestamp) VALUES (?, ?, ?, ?)`,
		sessionID, string(msg.Actor), msg.Content, msg.Timestamp)
	if err != nil {
		if isForeignKeyViolation(err) {
			return perrors.SessionNotFound(sessionID)
		}
		return perrors.StoreQueryFailed("store.AppendMessage", err)
	}
	return nil
}

func (s *SQLite) Messages(ctx context.Context, sessionID string) ([]transcript.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT actor, content, timestamp FROM messages WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, perrors.StoreQueryFailed("store.Messages", err)
	}
	defer rows.Close()

	var out []transcript.Message
	for rows.Next() {
		var m transcript.Message
		var actor string
		if err := rows.Scan(&actor, &m.Content, &m.Timestamp); err != nil {
			return nil, perrors.StoreQueryFailed("store.Messages", err)
		}
		m.Actor = transcript.Actor(actor)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, perrors.StoreQueryFailed("store.Messages", err)
	}
	return out, nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return perrors.StoreQueryFailed("store.Clear", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return perrors.StoreQueryFailed("store.Clear", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return perrors.StoreQueryFailed("store.Clear", err)
	}
	if err := tx.Commit(); err != nil {
		return perrors.StoreQueryFailed("store.Clear", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return perrors.StoreQueryFailed("store.RowsAffected", err)
	}
	if n == 0 {
		return perrors.SessionNotFound(id)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	if stderrors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
