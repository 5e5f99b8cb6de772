package editor

import (
	"errors"
	"fmt"

	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/gesture"
	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/report"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command operations.
const (
	OpMode     = "mode"
	OpDown     = "pointer_down"
	OpMove     = "pointer_move"
	OpUp       = "pointer_up"
	OpCancel   = "cancel"
	OpSelect   = "select"
	OpDelete   = "delete"
	OpText     = "text"
	OpRename   = "rename"
	OpClear    = "clear"
	OpUndo     = "undo"
	OpRedo     = "redo"
	OpGrid     = "toggle_grid"
	OpZoom     = "zoom"
	OpZoomIn   = "zoom_in"
	OpZoomOut  = "zoom_out"
	OpLoad     = "load"
	OpTemplate = "template"
	OpState    = "state"
)

// Command: одно действие пользователя, общее для REST и websocket.
type Command struct {
	Op       string             `json:"op"`
	Mode     string             `json:"mode,omitempty"`
	X        float64            `json:"x,omitempty"`
	Y        float64            `json:"y,omitempty"`
	ID       string             `json:"id,omitempty"`
	Text     string             `json:"text,omitempty"`
	Zoom     float64            `json:"zoom,omitempty"`
	Template string             `json:"template,omitempty"`
	Document *document.Document `json:"document,omitempty"`
}

// State is what a client needs to redraw after a command.
type State struct {
	Mode      string              `json:"mode"`
	Zoom      float64             `json:"zoom"`
	ShowGrid  bool                `json:"showGrid"`
	CanUndo   bool                `json:"canUndo"`
	CanRedo   bool                `json:"canRedo"`
	Committed []string            `json:"committed,omitempty"`
	EditLabel string              `json:"editLabel,omitempty"`
	Preview   *document.ObjectDoc `json:"preview,omitempty"`
	Selected  *report.Dimensions  `json:"selected,omitempty"`
	Summary   report.Summary      `json:"summary"`
	Document  document.Document   `json:"document"`
}

// Execute применяет команду и возвращает новое состояние редактора.
func (e *Editor) Execute(cmd Command) (State, error) {
	var res gesture.Result
	point := models.Point{X: cmd.X, Y: cmd.Y}

	switch cmd.Op {
	case OpMode:
		mode, err := gesture.ParseMode(cmd.Mode)
		if err != nil {
			return State{}, err
		}
		e.SetMode(mode)
	case OpDown:
		r, err := e.PointerDown(point)
		if err != nil {
			return State{}, err
		}
		res = r
	case OpMove:
		if err := e.PointerMove(point); err != nil {
			return State{}, err
		}
	case OpUp:
		r, err := e.PointerUp(point)
		if err != nil {
			return State{}, err
		}
		res = r
	case OpCancel:
		e.Cancel()
	case OpSelect:
		if err := e.Select(cmd.ID); err != nil {
			return State{}, err
		}
	case OpDelete:
		if cmd.ID != "" {
			if err := e.Select(cmd.ID); err != nil {
				return State{}, err
			}
		}
		if err := e.Delete(); err != nil {
			return State{}, err
		}
	case OpText:
		if err := e.EditText(cmd.ID, cmd.Text); err != nil {
			return State{}, err
		}
	case OpRename:
		if err := e.Rename(cmd.ID, cmd.Text); err != nil {
			return State{}, err
		}
	case OpClear:
		if err := e.Clear(); err != nil {
			return State{}, err
		}
	case OpUndo:
		if _, err := e.Undo(); err != nil {
			return State{}, err
		}
	case OpRedo:
		if _, err := e.Redo(); err != nil {
			return State{}, err
		}
	case OpGrid:
		e.ToggleGrid()
	case OpZoom:
		e.SetZoom(cmd.Zoom)
	case OpZoomIn:
		e.ZoomIn()
	case OpZoomOut:
		e.ZoomOut()
	case OpLoad:
		if cmd.Document == nil {
			return State{}, fmt.Errorf("load: %w: document is required", document.ErrMalformed)
		}
		if err := e.Load(*cmd.Document); err != nil {
			return State{}, err
		}
	case OpTemplate:
		if err := e.LoadTemplate(cmd.Template); err != nil {
			return State{}, err
		}
	case OpState:
	default:
		return State{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
	}

	state := e.State()
	state.Committed = res.Committed
	state.EditLabel = res.EditLabel
	return state, nil
}

// State собирает текущее состояние редактора.
func (e *Editor) State() State {
	state := State{
		Mode:     string(e.Mode()),
		Zoom:     e.zoom,
		ShowGrid: e.scene.Settings().ShowGrid,
		CanUndo:  e.CanUndo(),
		CanRedo:  e.CanRedo(),
		Selected: e.Dimensions(),
		Summary:  e.Summary(),
		Document: e.Save(""),
	}
	if preview, ok := e.Preview(); ok {
		doc := document.EncodeObject(preview)
		state.Preview = &doc
	}
	return state
}
