package parser

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"floorplanner/internal/converter/models"
	plan "floorplanner/internal/editor/models"
)

// ============================================================
// XML Structures
// ============================================================

type SVG struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Group
}

type Group struct {
	ID     string  `xml:"id,attr"`
	Rects  []Rect  `xml:"rect"`
	Paths  []Path  `xml:"path"`
	Lines  []Line  `xml:"line"`
	Texts  []Text  `xml:"text"`
	Groups []Group `xml:"g"`
}

type Paint struct {
	Fill        string `xml:"fill,attr"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
}

type Rect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
	Title  string  `xml:"title"`
	Paint
}

type Path struct {
	ID    string `xml:"id,attr"`
	D     string `xml:"d,attr"`
	Title string `xml:"title"`
	Paint
}

type Line struct {
	ID string  `xml:"id,attr"`
	X1 float64 `xml:"x1,attr"`
	Y1 float64 `xml:"y1,attr"`
	X2 float64 `xml:"x2,attr"`
	Y2 float64 `xml:"y2,attr"`
	Paint
}

type Text struct {
	ID         string  `xml:"id,attr"`
	X          float64 `xml:"x,attr"`
	Y          float64 `xml:"y,attr"`
	FontSize   string  `xml:"font-size,attr"`
	TextAnchor string  `xml:"text-anchor,attr"`
	Content    string  `xml:",chardata"`
	Paint
}

// ============================================================
// Parser
// ============================================================

// ParseSVG читает svg и возвращает распознанные элементы плана.
// Elements without a recognised id are skipped; a group's id applies to
// its unnamed children.
func ParseSVG(r io.Reader) (*models.Drawing, error) {
	var svg SVG
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&svg); err != nil {
		return nil, err
	}

	drawing := &models.Drawing{Canvas: parseCanvas(svg)}
	collect(svg.Group, "", drawing)
	return drawing, nil
}

func collect(g Group, inherited string, out *models.Drawing) {
	if g.ID != "" && classifyElementByID(g.ID) != "" {
		inherited = g.ID
	}
	pick := func(id string) string {
		if id != "" {
			return id
		}
		return inherited
	}

	for _, rect := range g.Rects {
		id := pick(rect.ID)
		elemType := classifyElementByID(id)
		if elemType == "" {
			continue
		}
		out.Elements = append(out.Elements, models.SVGElement{
			ID:       id,
			Type:     elemType,
			Title:    strings.TrimSpace(rect.Title),
			Paint:    rect.Paint.model(),
			Geometry: models.RectGeometry{Rect: plan.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height}},
		})
	}

	for _, path := range g.Paths {
		id := pick(path.ID)
		elemType := classifyElementByID(id)
		if elemType == "" {
			continue
		}
		out.Elements = append(out.Elements, models.SVGElement{
			ID:       id,
			Type:     elemType,
			Title:    strings.TrimSpace(path.Title),
			Paint:    path.Paint.model(),
			Geometry: models.PathGeometry{D: path.D},
		})
	}

	// a door group also carries its sill line, which is derived on import
	for _, line := range g.Lines {
		if line.ID == "" {
			continue
		}
		elemType := classifyElementByID(line.ID)
		if elemType == "" {
			continue
		}
		out.Elements = append(out.Elements, models.SVGElement{
			ID:    line.ID,
			Type:  elemType,
			Paint: line.Paint.model(),
			Geometry: models.LineGeometry{Segment: plan.Segment{
				A: plan.Point{X: line.X1, Y: line.Y1},
				B: plan.Point{X: line.X2, Y: line.Y2},
			}},
		})
	}

	for _, text := range g.Texts {
		if classifyElementByID(text.ID) != models.TypeLabel {
			continue
		}
		paint := text.Paint.model()
		paint.FontSize = parseLength(text.FontSize)
		out.Elements = append(out.Elements, models.SVGElement{
			ID:    text.ID,
			Type:  models.TypeLabel,
			Paint: paint,
			Geometry: models.TextGeometry{
				Position: plan.Point{X: text.X, Y: text.Y},
				Text:     strings.TrimSpace(text.Content),
				Centered: text.TextAnchor == "middle",
			},
		})
	}

	for _, child := range g.Groups {
		collect(child, inherited, out)
	}
}

func classifyElementByID(id string) models.ElementType {
	switch {
	case strings.HasPrefix(id, "Wall_"), strings.HasPrefix(id, "Hui_Wall_"):
		return models.TypeWall
	case strings.HasPrefix(id, "Door_"):
		return models.TypeDoor
	case strings.HasPrefix(id, "Window_"):
		return models.TypeWindow
	case strings.HasPrefix(id, "Room_"),
		strings.HasSuffix(id, "_room"), // Hall_room, Toilet_room
		strings.HasSuffix(id, "_Room"),
		strings.HasPrefix(id, "Balcony"):
		return models.TypeRoom
	case strings.HasPrefix(id, "Label_"):
		return models.TypeLabel
	}
	return ""
}

func (p Paint) model() models.Paint {
	return models.Paint{Fill: p.Fill, Stroke: p.Stroke, StrokeWidth: parseLength(p.StrokeWidth)}
}

func parseCanvas(svg SVG) models.Canvas {
	canvas := models.Canvas{Width: parseLength(svg.Width), Height: parseLength(svg.Height)}
	if canvas.Width > 0 && canvas.Height > 0 {
		return canvas
	}
	box := parseCoords(svg.ViewBox)
	if len(box) == 4 {
		return models.Canvas{Width: box[2], Height: box[3]}
	}
	return models.Canvas{}
}

// parseLength принимает "700", "700px"; прочие единицы не поддерживаются.
func parseLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
