package session

import (
	"sync"
	"testing"
	"time"

	"floorplanner/internal/editor"
	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenGetClose(t *testing.T) {
	r := NewRegistry(models.DefaultSettings(), zerolog.Nop())

	h, err := r.Open(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(h.ID)
	require.NoError(t, err)
	assert.Same(t, h, got)

	require.NoError(t, r.Close(h.ID))
	_, err = r.Get(h.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Close(h.ID), ErrNotFound)
}

func TestOpenWithDocument(t *testing.T) {
	r := NewRegistry(models.DefaultSettings(), zerolog.Nop())
	doc, err := document.LoadTemplate("studio")
	require.NoError(t, err)

	h, err := r.Open(&doc)
	require.NoError(t, err)
	require.NoError(t, h.Do(func(e *editor.Editor) error {
		assert.Equal(t, 2700, e.Summary().TotalArea)
		return nil
	}))

	_, err = r.Open(&document.Document{Version: 3})
	assert.ErrorIs(t, err, document.ErrUnsupportedVersion)
	assert.Equal(t, 1, r.Len())
}

func TestHandleSerializesAccess(t *testing.T) {
	r := NewRegistry(models.DefaultSettings(), zerolog.Nop())
	h, err := r.Open(nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, h.Do(func(e *editor.Editor) error {
				_, err := e.Execute(editor.Command{Op: editor.OpMode, Mode: "label"})
				if err != nil {
					return err
				}
				_, err = e.Execute(editor.Command{Op: editor.OpDown, X: float64(i * 20), Y: 0})
				return err
			}))
		}(i)
	}
	wg.Wait()

	require.NoError(t, h.Do(func(e *editor.Editor) error {
		assert.Len(t, e.Scene().Content(), 20)
		return nil
	}))
}

func TestHandleState(t *testing.T) {
	r := NewRegistry(models.DefaultSettings(), zerolog.Nop())
	h, err := r.Open(nil)
	require.NoError(t, err)

	state, err := h.State()
	require.NoError(t, err)
	assert.Equal(t, "select", state.Mode)
	assert.False(t, state.CanUndo)
}

func TestSweep(t *testing.T) {
	r := NewRegistry(models.DefaultSettings(), zerolog.Nop())
	_, err := r.Open(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, r.Sweep(time.Hour))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, r.Sweep(time.Millisecond))
	assert.Equal(t, 0, r.Len())
}
