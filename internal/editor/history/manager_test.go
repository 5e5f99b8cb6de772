package history

import (
	"testing"

	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(s string) []byte {
	return []byte(s)
}

func TestUndoRedoAtEnds(t *testing.T) {
	m := New(snap("init"), 0)
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())

	_, ok := m.Undo()
	assert.False(t, ok)
	_, ok = m.Redo()
	assert.False(t, ok)
	assert.Equal(t, snap("init"), m.Current())
}

func TestUndoRedo(t *testing.T) {
	m := New(snap("init"), 0)
	m.Commit(snap("A"))
	m.Commit(snap("B"))
	require.Equal(t, 2, m.Cursor())

	got, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, snap("A"), got)

	got, ok = m.Undo()
	require.True(t, ok)
	assert.Equal(t, snap("init"), got)

	got, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, snap("A"), got)
	assert.True(t, m.CanRedo())
}

func TestCommitAfterUndoDropsRedoBranch(t *testing.T) {
	m := New(snap("init"), 0)
	m.Commit(snap("A"))
	m.Commit(snap("B"))
	_, ok := m.Undo()
	require.True(t, ok)
	m.Commit(snap("C"))

	_, ok = m.Redo()
	assert.False(t, ok, "B must stay unreachable")
	assert.Equal(t, 3, m.Len())

	got, _ := m.Undo()
	assert.Equal(t, snap("A"), got)
	got, _ = m.Redo()
	assert.Equal(t, snap("C"), got)
}

func TestLimitKeepsInitialEntry(t *testing.T) {
	m := New(snap("init"), 3)
	m.Commit(snap("A"))
	m.Commit(snap("B"))
	m.Commit(snap("C"))

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, snap("C"), m.Current())

	got, _ := m.Undo()
	assert.Equal(t, snap("B"), got)
	got, _ = m.Undo()
	assert.Equal(t, snap("init"), got)
	assert.False(t, m.CanUndo())
}

func TestSnapshotsAreCopies(t *testing.T) {
	buf := snap("init")
	m := New(buf, 0)
	buf[0] = 'X'
	assert.Equal(t, snap("init"), m.Current())

	cur := m.Current()
	cur[0] = 'Y'
	assert.Equal(t, snap("init"), m.Current())
}

func TestReset(t *testing.T) {
	m := New(snap("init"), 0)
	m.Commit(snap("A"))
	m.Reset(snap("loaded"))

	assert.Equal(t, 1, m.Len())
	assert.False(t, m.CanUndo())
	assert.Equal(t, snap("loaded"), m.Current())
}

func TestCodecIsCanonical(t *testing.T) {
	sc := scene.New(models.DefaultSettings())
	require.NoError(t, sc.Add(models.Object{
		ID:         "r",
		Kind:       models.KindRoom,
		Geometry:   models.RectGeometry{Rect: models.Rect{Width: 60, Height: 60}},
		Style:      models.DefaultStyle(models.KindRoom),
		Selectable: true,
	}))

	first, err := Encode(document.Serialize(sc))
	require.NoError(t, err)
	second, err := Encode(document.Serialize(sc))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	doc, err := Decode(first)
	require.NoError(t, err)
	assert.Equal(t, document.Serialize(sc), doc)

	_, err = Decode([]byte{0xff, 0x00})
	assert.ErrorIs(t, err, document.ErrMalformed)
}
