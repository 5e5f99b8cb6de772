package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"floorplanner/internal/editor"
	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("session not found")

// ============================================================
// Session Registry
// ============================================================

// Handle guards one live editor. All access goes through Do.
type Handle struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	editor   *editor.Editor
	lastUsed time.Time
}

// Do выполняет fn под замком редактора.
func (h *Handle) Do(fn func(e *editor.Editor) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastUsed = time.Now()
	return fn(h.editor)
}

// State снимает состояние редактора под замком.
func (h *Handle) State() (editor.State, error) {
	var state editor.State
	err := h.Do(func(e *editor.Editor) error {
		state = e.State()
		return nil
	})
	if err != nil {
		return editor.State{}, fmt.Errorf("session %s state: %w", h.ID, err)
	}
	return state, nil
}

func (h *Handle) idleSince(now time.Time) time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return now.Sub(h.lastUsed)
}

// Registry хранит живые редакторы по id сессии.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Handle
	settings models.Settings
	base     zerolog.Logger
	log      zerolog.Logger
}

func NewRegistry(settings models.Settings, logger zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Handle),
		settings: settings,
		base:     logger,
		log:      logger.With().Str("component", "session").Logger(),
	}
}

// Open создаёт редактор; с документом он сразу загружается.
func (r *Registry) Open(doc *document.Document) (*Handle, error) {
	var (
		e   *editor.Editor
		err error
	)
	if doc != nil {
		e, err = editor.NewFromDocument(r.settings, *doc, r.base)
	} else {
		e, err = editor.New(r.settings, r.base)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	h := &Handle{ID: uuid.NewString(), CreatedAt: now, editor: e, lastUsed: now}

	r.mu.Lock()
	r.sessions[h.ID] = h
	count := len(r.sessions)
	r.mu.Unlock()

	r.log.Info().Str("session", h.ID).Int("open", count).Msg("session opened")
	return h, nil
}

func (r *Registry) Get(id string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return h, nil
}

// Close удаляет сессию; редактор уничтожается вместе с ней.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	r.log.Info().Str("session", id).Msg("session closed")
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep закрывает сессии, простаивающие дольше maxIdle.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	now := time.Now()

	r.mu.Lock()
	var stale []string
	for id, h := range r.sessions {
		if h.idleSince(now) > maxIdle {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if len(stale) > 0 {
		r.log.Info().Int("closed", len(stale)).Msg("idle sessions swept")
	}
	return len(stale)
}
