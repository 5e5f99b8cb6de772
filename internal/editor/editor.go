package editor

import (
	"fmt"
	"math"

	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/export"
	"floorplanner/internal/editor/gesture"
	"floorplanner/internal/editor/history"
	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/report"
	"floorplanner/internal/editor/scene"
	"floorplanner/internal/editor/selection"

	"github.com/rs/zerolog"
)

const (
	MinZoom  = 0.25
	MaxZoom  = 4.0
	ZoomStep = 1.1
)

// ============================================================
// Editor
// ============================================================

// Editor владеет одной сценой, её историей и обработчиками жестов.
// An Editor is not safe for concurrent use.
type Editor struct {
	scene     *scene.Scene
	gestures  *gesture.Machine
	selection *selection.Controller
	history   *history.Manager
	raster    *export.Rasterizer
	zoom      float64
	name      string
	log       zerolog.Logger
}

// New создаёт редактор с пустой сценой.
func New(settings models.Settings, logger zerolog.Logger) (*Editor, error) {
	sc := scene.New(settings)
	e := &Editor{
		scene:     sc,
		gestures:  gesture.New(sc),
		selection: selection.New(sc),
		raster:    export.NewRasterizer(),
		zoom:      1,
		log:       logger.With().Str("component", "editor").Logger(),
	}
	initial, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	e.history = history.New(initial, sc.Settings().HistoryLimit)
	return e, nil
}

// NewFromDocument создаёт редактор и загружает в него документ.
func NewFromDocument(settings models.Settings, doc document.Document, logger zerolog.Logger) (*Editor, error) {
	e, err := New(settings, logger)
	if err != nil {
		return nil, err
	}
	if err := e.Load(doc); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Editor) Scene() *scene.Scene {
	return e.scene
}

func (e *Editor) Name() string {
	return e.name
}

func (e *Editor) Mode() gesture.Mode {
	return e.gestures.Mode()
}

func (e *Editor) Zoom() float64 {
	return e.zoom
}

// ============================================================
// Pointer input
// ============================================================

// toCanvas переводит экранные координаты в координаты холста.
func (e *Editor) toCanvas(screen models.Point) models.Point {
	return models.Point{X: screen.X / e.zoom, Y: screen.Y / e.zoom}
}

// SetMode переключает режим рисования; незавершённый жест отбрасывается.
func (e *Editor) SetMode(mode gesture.Mode) {
	if e.gestures.Active() {
		e.log.Debug().Str("mode", string(e.gestures.Mode())).Msg("gesture discarded by mode switch")
	}
	e.gestures.SetMode(mode)
	if mode != gesture.ModeSelect {
		e.selection.Clear()
	}
}

func (e *Editor) PointerDown(screen models.Point) (gesture.Result, error) {
	p := e.toCanvas(screen)
	if e.gestures.Mode() == gesture.ModeSelect {
		e.selection.PointerDown(p)
		return gesture.Result{}, nil
	}
	res, err := e.gestures.PointerDown(p)
	if err != nil {
		return gesture.Result{}, err
	}
	if res.Snapshot {
		if err := e.commit("label"); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (e *Editor) PointerMove(screen models.Point) error {
	p := e.toCanvas(screen)
	if e.gestures.Mode() == gesture.ModeSelect {
		return e.selection.PointerMove(p)
	}
	e.gestures.PointerMove(p)
	return nil
}

func (e *Editor) PointerUp(screen models.Point) (gesture.Result, error) {
	p := e.toCanvas(screen)
	if e.gestures.Mode() == gesture.ModeSelect {
		res, err := e.selection.PointerUp(p)
		if err != nil {
			return gesture.Result{}, err
		}
		if res.Snapshot {
			return gesture.Result{Snapshot: true}, e.commit("drag")
		}
		return gesture.Result{}, nil
	}

	res, err := e.gestures.PointerUp(p)
	if err != nil {
		return gesture.Result{}, err
	}
	if res.Snapshot {
		if err := e.commit(string(e.gestures.Mode())); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Cancel отбрасывает открытый жест рисования.
func (e *Editor) Cancel() {
	e.gestures.Cancel()
}

// Preview возвращает превью текущего жеста.
func (e *Editor) Preview() (models.Object, bool) {
	return e.gestures.Preview()
}

// ============================================================
// Selection edits
// ============================================================

func (e *Editor) Selected() (models.Object, bool) {
	return e.selection.Selected()
}

func (e *Editor) Select(id string) error {
	return e.selection.Select(id)
}

func (e *Editor) Delete() error {
	res, err := e.selection.Delete()
	if err != nil {
		return err
	}
	if res.Snapshot {
		return e.commit("delete")
	}
	return nil
}

func (e *Editor) EditText(id, text string) error {
	res, err := e.selection.EditText(id, text)
	if err != nil {
		return err
	}
	if res.Snapshot {
		return e.commit("edit text")
	}
	return nil
}

func (e *Editor) Rename(id, name string) error {
	res, err := e.selection.Rename(id, name)
	if err != nil {
		return err
	}
	if res.Snapshot {
		return e.commit("rename")
	}
	return nil
}

// Clear очищает холст, сохраняя сетку; это обычная фиксируемая правка.
func (e *Editor) Clear() error {
	e.gestures.Cancel()
	e.selection.Clear()
	if len(e.scene.Content()) == 0 {
		return nil
	}
	e.scene.Clear(true)
	return e.commit("clear")
}

// ============================================================
// History
// ============================================================

func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// Undo возвращает предыдущий снимок; на самом старом ничего не делает.
func (e *Editor) Undo() (bool, error) {
	e.gestures.Cancel()
	data, ok := e.history.Undo()
	if !ok {
		return false, nil
	}
	if err := e.restore(data); err != nil {
		e.history.Redo()
		return false, fmt.Errorf("undo: %w", err)
	}
	e.log.Debug().Int("cursor", e.history.Cursor()).Msg("undo")
	return true, nil
}

func (e *Editor) Redo() (bool, error) {
	e.gestures.Cancel()
	data, ok := e.history.Redo()
	if !ok {
		return false, nil
	}
	if err := e.restore(data); err != nil {
		e.history.Undo()
		return false, fmt.Errorf("redo: %w", err)
	}
	e.log.Debug().Int("cursor", e.history.Cursor()).Msg("redo")
	return true, nil
}

func (e *Editor) snapshot() ([]byte, error) {
	return history.Encode(document.Serialize(e.scene))
}

func (e *Editor) commit(reason string) error {
	data, err := e.snapshot()
	if err != nil {
		e.log.Warn().Err(err).Str("reason", reason).Msg("snapshot failed")
		return err
	}
	e.history.Commit(data)
	e.log.Debug().Str("reason", reason).Int("entries", e.history.Len()).Msg("committed")
	return nil
}

// restore загружает снимок в живую сцену, полностью заменяя объекты.
func (e *Editor) restore(data []byte) error {
	doc, err := history.Decode(data)
	if err != nil {
		return err
	}
	objects, err := document.Decode(doc)
	if err != nil {
		return err
	}
	if err := e.scene.Replace(objects); err != nil {
		return err
	}
	e.selection.Clear()
	return nil
}

// ============================================================
// View
// ============================================================

// ToggleGrid показывает или скрывает сетку; в историю не попадает.
func (e *Editor) ToggleGrid() bool {
	visible := !e.scene.Settings().ShowGrid
	e.scene.SetGridVisible(visible)
	return visible
}

// SetZoom задаёт масштаб вида в пределах [MinZoom, MaxZoom].
func (e *Editor) SetZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || zoom <= 0 {
		return e.zoom
	}
	e.zoom = math.Max(MinZoom, math.Min(MaxZoom, zoom))
	return e.zoom
}

func (e *Editor) ZoomIn() float64 {
	return e.SetZoom(e.zoom * ZoomStep)
}

func (e *Editor) ZoomOut() float64 {
	return e.SetZoom(e.zoom / ZoomStep)
}

// ============================================================
// Documents
// ============================================================

// Save возвращает документ текущей сцены.
func (e *Editor) Save(name string) document.Document {
	if name != "" {
		e.name = name
	}
	doc := document.Serialize(e.scene)
	doc.Name = e.name
	return doc
}

// Load заменяет сцену документом и начинает историю заново.
// On error the editor is left exactly as it was.
func (e *Editor) Load(doc document.Document) error {
	if err := document.Apply(e.scene, doc); err != nil {
		e.log.Warn().Err(err).Msg("load rejected")
		return fmt.Errorf("load: %w", err)
	}
	e.gestures.Cancel()
	e.selection.Clear()
	e.name = doc.Name

	initial, err := e.snapshot()
	if err != nil {
		return err
	}
	e.history.Reset(initial)
	e.log.Debug().Str("name", doc.Name).Int("objects", len(doc.Objects)).Msg("document loaded")
	return nil
}

func (e *Editor) LoadTemplate(id string) error {
	doc, err := document.LoadTemplate(id)
	if err != nil {
		return err
	}
	return e.Load(doc)
}

// ============================================================
// Reports & exports
// ============================================================

// Dimensions измеряет выделенный объект; nil без выделения.
func (e *Editor) Dimensions() *report.Dimensions {
	obj, ok := e.selection.Selected()
	if !ok {
		return nil
	}
	return report.Describe(&obj, e.scene.Settings())
}

func (e *Editor) Summary() report.Summary {
	return report.Summarize(e.scene)
}

func (e *Editor) ExportPNG() ([]byte, error) {
	return e.raster.Raster(e.scene)
}

func (e *Editor) ExportSVG() string {
	return export.SVG(e.scene)
}
