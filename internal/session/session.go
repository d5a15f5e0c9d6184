// Package session binds a visitor to a namespaced slice of the key-value
// storage. It replaces the browser's localStorage of the storefront.
package session

import (
	"net/http"

	"swarachna-api/internal/pkg/apperror"
	"swarachna-api/internal/storage"

	"github.com/google/uuid"
)

var ErrInvalidSessionID = apperror.New(
	apperror.CodeInvalidInput,
	"Invalid session id",
	http.StatusBadRequest,
)

type Session struct {
	ID    string
	Store storage.Store
}

type Manager struct {
	root storage.Store
}

func NewManager(root storage.Store) *Manager {
	return &Manager{root: root}
}

// Start creates a fresh session with a random id.
func (m *Manager) Start() *Session {
	id := uuid.NewString()
	return m.bind(id)
}

// Open binds an existing session id. Only UUIDs are accepted so clients cannot
// address arbitrary storage keys.
func (m *Manager) Open(id string) (*Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidSessionID
	}
	return m.bind(parsed.String()), nil
}

func (m *Manager) bind(id string) *Session {
	return &Session{
		ID:    id,
		Store: storage.Namespace(m.root, "session:"+id+":"),
	}
}
