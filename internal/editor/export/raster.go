package export

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/scene"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Supersample is the fixed factor between canvas and exported pixels.
const Supersample = 2.0

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func labelFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// ============================================================
// Raster export
// ============================================================

// Rasterizer рисует сцену в PNG с фиксированным масштабом.
type Rasterizer struct {
	scale float64
}

func NewRasterizer() *Rasterizer {
	return &Rasterizer{scale: Supersample}
}

// Raster рисует текущее состояние сцены, включая сетку.
// An empty scene still yields a valid white image.
func (r *Rasterizer) Raster(sc *scene.Scene) ([]byte, error) {
	settings := sc.Settings()
	width := int(math.Ceil(settings.CanvasWidth * r.scale))
	height := int(math.Ceil(settings.CanvasHeight * r.scale))

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	for _, obj := range sc.All() {
		if err := r.draw(dc, obj); err != nil {
			return nil, fmt.Errorf("failed to draw %s %s: %w", obj.Kind, obj.ID, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Rasterizer) draw(dc *gg.Context, obj models.Object) error {
	s := r.scale
	switch g := obj.Geometry.(type) {
	case models.WallGeometry:
		return r.line(dc, g.Segment, obj.Style)
	case models.GridGeometry:
		return r.line(dc, g.Segment, obj.Style)
	case models.RectGeometry:
		return r.rect(dc, g.Rect, obj.Style)
	case models.DoorGeometry:
		if err := r.rect(dc, g.Rect, obj.Style); err != nil {
			return err
		}
		return r.line(dc, g.Sill, obj.Style)
	case models.LabelGeometry:
		if g.Text == "" {
			return nil
		}
		source, err := labelFont()
		if err != nil {
			return fmt.Errorf("failed to load font: %w", err)
		}
		size := obj.Style.FontSize
		if size <= 0 {
			size = models.DefaultLabelFontSize
		}
		dc.SetFont(source.Face(size * s))
		setColor(dc, obj.Style.Fill, gg.Black)
		if obj.Owner != "" {
			dc.DrawStringAnchored(g.Text, g.Position.X*s, g.Position.Y*s, 0.5, 0.35)
			return nil
		}
		// Free labels are anchored at their top-left corner, DrawString wants a baseline.
		dc.DrawString(g.Text, g.Position.X*s, (g.Position.Y+size*0.8)*s)
	}
	return nil
}

func (r *Rasterizer) line(dc *gg.Context, seg models.Segment, style models.Style) error {
	col, ok := parseColor(style.Stroke)
	if !ok || style.StrokeWidth <= 0 {
		return nil
	}
	s := r.scale
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	dc.SetLineWidth(style.StrokeWidth * s)
	dc.DrawLine(seg.A.X*s, seg.A.Y*s, seg.B.X*s, seg.B.Y*s)
	return dc.Stroke()
}

func (r *Rasterizer) rect(dc *gg.Context, rect models.Rect, style models.Style) error {
	s := r.scale
	if col, ok := parseColor(style.Fill); ok {
		dc.SetRGBA(col.R, col.G, col.B, col.A)
		dc.DrawRectangle(rect.X*s, rect.Y*s, rect.Width*s, rect.Height*s)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	col, ok := parseColor(style.Stroke)
	if !ok || style.StrokeWidth <= 0 {
		return nil
	}
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	dc.SetLineWidth(style.StrokeWidth * s)
	dc.DrawRectangle(rect.X*s, rect.Y*s, rect.Width*s, rect.Height*s)
	return dc.Stroke()
}

func setColor(dc *gg.Context, s string, fallback gg.RGBA) {
	col, ok := parseColor(s)
	if !ok {
		col = fallback
	}
	dc.SetRGBA(col.R, col.G, col.B, col.A)
}
