// Package session keeps one search page per browser session.
//
// Pages are stored rendered in a cache.Cache, so a session survives across
// requests and, with the redis provider, across instances. An expired or
// unreadable page is replaced by a fresh one.
package session

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowFinder/internal/cache"
	"github.com/Belphemur/ShowFinder/internal/dom"
	"github.com/Belphemur/ShowFinder/internal/ui"
)

const (
	keyPrefix = "page:"
	stripes   = 64
)

// Manager loads and stores session pages.
type Manager struct {
	store  cache.Cache
	logger zerolog.Logger
	locks  [stripes]sync.Mutex
}

func NewManager(store cache.Cache, logger zerolog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of an id returned by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// LogID returns a stable digest of id for log lines. The id itself
// authenticates the session and is never logged.
func LogID(id string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return fmt.Sprintf("%016x", h.Sum64())
}

// View returns the ui.View of session id.
func (m *Manager) View(id string) ui.View {
	return &view{manager: m, id: id}
}

// Page renders the current page of session id.
func (m *Manager) Page(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if stored, ok := m.store.Get(keyPrefix + id); ok {
		if _, err := dom.Load(stored); err == nil {
			return stored, nil
		}
	}
	p, err := dom.NewPage()
	if err != nil {
		return nil, err
	}
	return p.Bytes()
}

// Reset drops the stored page of session id.
func (m *Manager) Reset(id string) {
	m.store.Delete(keyPrefix + id)
}

func (m *Manager) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &m.locks[h.Sum32()%stripes]
}

func (m *Manager) load(id string) (*dom.Page, error) {
	key := keyPrefix + id
	if stored, ok := m.store.Get(key); ok {
		p, err := dom.Load(stored)
		if err == nil {
			return p, nil
		}
		m.logger.Warn().Err(err).Str("session", LogID(id)).Msg("Discarding unreadable session page")
		m.store.Delete(key)
	}
	return dom.NewPage()
}

func (m *Manager) save(id string, p *dom.Page) error {
	b, err := p.Bytes()
	if err != nil {
		return err
	}
	m.store.Set(keyPrefix+id, b)
	return nil
}

// view works on a private copy of the stored page. Updates of one session
// are serialized and written back before the lock is released.
type view struct {
	manager *Manager
	id      string
}

func (v *view) Read(ctx context.Context, fn func(p *dom.Page) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := v.manager.load(v.id)
	if err != nil {
		return fmt.Errorf("load session page: %w", err)
	}
	return fn(p)
}

func (v *view) Update(ctx context.Context, fn func(p *dom.Page) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mu := v.manager.lock(v.id)
	mu.Lock()
	defer mu.Unlock()

	p, err := v.manager.load(v.id)
	if err != nil {
		return fmt.Errorf("load session page: %w", err)
	}
	if err := fn(p); err != nil {
		return err
	}
	if err := v.manager.save(v.id, p); err != nil {
		return fmt.Errorf("save session page: %w", err)
	}
	return nil
}
