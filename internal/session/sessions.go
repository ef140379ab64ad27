// Package session wraps scs session management for the catalog UI and
// carries the flash messages surfaced after redirects.
package session

import (
	"context"
	"database/sql"
	"encoding/gob"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/marhild/booksmanager/internal/config"
)

const flashKey = "flash"

func init() {
	// Register types that will be stored in sessions
	gob.Register(Message{})
}

// Message is the transient per-request-cycle feedback shown by the
// templates. Only one field is typically populated.
type Message struct {
	Success string
	Error   string
	Info    string
}

// IsEmpty reports whether the message carries no text at all.
func (m Message) IsEmpty() bool {
	return m == Message{}
}

// SuccessMessage builds a success message.
func SuccessMessage(text string) Message { return Message{Success: text} }

// ErrorMessage builds an error message.
func ErrorMessage(text string) Message { return Message{Error: text} }

// InfoMessage builds an info message.
func InfoMessage(text string) Message { return Message{Info: text} }

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager backed by SQLite.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.Lifetime

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// PutFlash stores a message for the next request. A later PutFlash in the
// same cycle replaces it.
func (m *Manager) PutFlash(ctx context.Context, msg Message) {
	m.Put(ctx, flashKey, msg)
}

// PopFlash retrieves and removes the pending flash message, so it is
// surfaced to exactly one render. Returns the zero Message when the
// session holds none.
func (m *Manager) PopFlash(ctx context.Context) Message {
	msg, ok := m.Pop(ctx, flashKey).(Message)
	if !ok {
		return Message{}
	}
	return msg
}
