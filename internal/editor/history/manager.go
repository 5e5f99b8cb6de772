package history

// ============================================================
// History Manager
// ============================================================

// Manager хранит линейную последовательность снимков сцены и курсор.
// Entry 0 is the initial scene and is never evicted.
type Manager struct {
	entries [][]byte
	cursor  int
	limit   int
}

// New создаёт историю с начальным снимком.
// A limit of zero keeps every entry; otherwise at least two are kept.
func New(initial []byte, limit int) *Manager {
	if limit < 0 {
		limit = 0
	}
	if limit == 1 {
		limit = 2
	}
	return &Manager{entries: [][]byte{clone(initial)}, limit: limit}
}

// Commit отбрасывает ветку повтора и добавляет новый снимок.
func (m *Manager) Commit(snapshot []byte) {
	m.entries = append(m.entries[:m.cursor+1], clone(snapshot))
	m.cursor = len(m.entries) - 1

	if m.limit > 0 && len(m.entries) > m.limit {
		m.entries = append(m.entries[:1], m.entries[2:]...)
		m.cursor--
	}
}

// Undo сдвигает курсор назад и возвращает снимок для загрузки.
// At the oldest entry it is a no-op.
func (m *Manager) Undo() ([]byte, bool) {
	if m.cursor == 0 {
		return nil, false
	}
	m.cursor--
	return clone(m.entries[m.cursor]), true
}

// Redo сдвигает курсор вперёд; на последнем снимке ничего не делает.
func (m *Manager) Redo() ([]byte, bool) {
	if m.cursor == len(m.entries)-1 {
		return nil, false
	}
	m.cursor++
	return clone(m.entries[m.cursor]), true
}

// Reset начинает историю заново с одного снимка.
func (m *Manager) Reset(initial []byte) {
	m.entries = [][]byte{clone(initial)}
	m.cursor = 0
}

// Current возвращает снимок под курсором.
func (m *Manager) Current() []byte {
	return clone(m.entries[m.cursor])
}

func (m *Manager) CanUndo() bool {
	return m.cursor > 0
}

func (m *Manager) CanRedo() bool {
	return m.cursor < len(m.entries)-1
}

func (m *Manager) Len() int {
	return len(m.entries)
}

func (m *Manager) Cursor() int {
	return m.cursor
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
