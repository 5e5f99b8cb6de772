package export

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"floorplanner/internal/editor/models"
	"floorplanner/internal/editor/scene"
)

// Element id prefixes understood by the SVG importer.
const (
	PrefixWall   = "Wall_"
	PrefixRoom   = "Room_"
	PrefixDoor   = "Door_"
	PrefixWindow = "Window_"
	PrefixLabel  = "Label_"
)

// ============================================================
// SVG export
// ============================================================

// SVG собирает SVG из объектов сцены в порядке отрисовки.
func SVG(sc *scene.Scene) string {
	settings := sc.Settings()
	width, height := settings.CanvasWidth, settings.CanvasHeight

	var elements []string
	for _, obj := range sc.All() {
		if elem := renderObject(obj); elem != "" {
			elements = append(elements, elem)
		}
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(`  <rect width="%s" height="%s" fill="#ffffff" />`, formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

// ============================================================
// Element renderers
// ============================================================

func renderObject(obj models.Object) string {
	switch g := obj.Geometry.(type) {
	case models.GridGeometry:
		return renderLine("", g.Segment, obj.Style)
	case models.WallGeometry:
		return renderLine(PrefixWall+obj.ID, g.Segment, obj.Style)
	case models.RectGeometry:
		prefix := PrefixRoom
		if obj.Kind == models.KindWindow {
			prefix = PrefixWindow
		}
		return renderRect(prefix+obj.ID, g.Rect, obj.Style, obj.Name)
	case models.DoorGeometry:
		return fmt.Sprintf(`<g>%s%s</g>`,
			renderRect(PrefixDoor+obj.ID, g.Rect, obj.Style, ""),
			renderLine("", g.Sill, obj.Style))
	case models.LabelGeometry:
		return renderText(obj, g)
	}
	return ""
}

func renderLine(id string, seg models.Segment, style models.Style) string {
	return fmt.Sprintf(`<line%s x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" />`,
		idAttr(id), formatFloat(seg.A.X), formatFloat(seg.A.Y), formatFloat(seg.B.X), formatFloat(seg.B.Y),
		paint(style.Stroke), formatFloat(style.StrokeWidth))
}

func renderRect(id string, r models.Rect, style models.Style, name string) string {
	var title string
	if name != "" {
		title = "<title>" + escape(name) + "</title>"
	}
	elem := fmt.Sprintf(`<rect%s x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="%s"`,
		idAttr(id), formatFloat(r.X), formatFloat(r.Y), formatFloat(r.Width), formatFloat(r.Height),
		paint(style.Fill), paint(style.Stroke), formatFloat(style.StrokeWidth))
	if title == "" {
		return elem + ` />`
	}
	return elem + `>` + title + `</rect>`
}

func renderText(obj models.Object, g models.LabelGeometry) string {
	size := obj.Style.FontSize
	if size <= 0 {
		size = models.DefaultLabelFontSize
	}
	anchor := ""
	baseline := `dominant-baseline="hanging"`
	id := PrefixLabel + obj.ID
	if obj.Owner != "" {
		anchor = ` text-anchor="middle"`
		baseline = `dominant-baseline="middle"`
		id = ""
	}
	return fmt.Sprintf(`<text%s x="%s" y="%s" font-family="sans-serif" font-size="%s" fill="%s"%s %s>%s</text>`,
		idAttr(id), formatFloat(g.Position.X), formatFloat(g.Position.Y), formatFloat(size),
		paint(obj.Style.Fill), anchor, baseline, escape(g.Text))
}

// ============================================================
// Formatting helpers
// ============================================================

func idAttr(id string) string {
	if id == "" {
		return ""
	}
	return ` id="` + escape(id) + `"`
}

func paint(s string) string {
	if s == "" {
		return "none"
	}
	return escape(s)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
