package live

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"floorplanner/internal/editor"
	"floorplanner/internal/editor/session"

	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait = 10 * time.Second
	// maxMessageSize bounds one command; load commands carry whole documents.
	maxMessageSize = 4 << 20
)

// ============================================================
// Live Handler
// ============================================================

// Reply is sent for every command received on the socket.
type Reply struct {
	Session string        `json:"session"`
	State   *editor.State `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Handler ведёт редактор через websocket: одна горутина на соединение.
// With ?session=<id> the socket drives an existing session; otherwise a
// session is opened for the connection and closed when it ends.
type Handler struct {
	sessions *session.Registry
	upgrader gorilla.Upgrader
	log      zerolog.Logger
}

func NewHandler(sessions *session.Registry, logger zerolog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logger.With().Str("component", "live").Logger(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handle, owned, err := h.attach(r.URL.Query().Get("session"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		if owned {
			_ = h.sessions.Close(handle.ID)
		}
		return
	}
	defer conn.Close()
	if owned {
		defer func() { _ = h.sessions.Close(handle.ID) }()
	}

	log := h.log.With().Str("session", handle.ID).Logger()
	log.Info().Bool("owned", owned).Msg("socket connected")

	if err := h.serve(conn, handle); err != nil {
		if gorilla.IsUnexpectedCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseGoingAway) {
			log.Warn().Err(err).Msg("socket closed unexpectedly")
			return
		}
	}
	log.Info().Msg("socket disconnected")
}

func (h *Handler) attach(id string) (*session.Handle, bool, error) {
	if id != "" {
		handle, err := h.sessions.Get(id)
		return handle, false, err
	}
	handle, err := h.sessions.Open(nil)
	return handle, true, err
}

func (h *Handler) serve(conn *gorilla.Conn, handle *session.Handle) error {
	conn.SetReadLimit(maxMessageSize)

	initial, err := handle.State()
	if err != nil {
		return err
	}
	if err := write(conn, Reply{Session: handle.ID, State: &initial}); err != nil {
		return err
	}

	for {
		var cmd editor.Command
		if err := read(conn, &cmd); err != nil {
			if isDecodeError(err) {
				if err := write(conn, Reply{Session: handle.ID, Error: "invalid json"}); err != nil {
					return err
				}
				continue
			}
			return err
		}

		reply := Reply{Session: handle.ID}
		err := handle.Do(func(e *editor.Editor) error {
			state, err := e.Execute(cmd)
			if err == nil {
				reply.State = &state
			}
			return err
		})
		if err != nil {
			reply.Error = err.Error()
		}
		if err := write(conn, reply); err != nil {
			return err
		}
	}
}

func isDecodeError(err error) bool {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return errors.As(err, &syntax) || errors.As(err, &typ)
}

func read(conn *gorilla.Conn, v any) error {
	_, r, err := conn.NextReader()
	if err != nil {
		return err
	}
	return json.NewDecoder(r).Decode(v)
}

func write(conn *gorilla.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	w, err := conn.NextWriter(gorilla.TextMessage)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return err
	}
	return w.Close()
}
