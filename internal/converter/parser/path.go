package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	plan "floorplanner/internal/editor/models"
)

// ============================================================
// Path Parser
// ============================================================

var commandRe = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePath парсит SVG path в список точек.
// Only straight-line commands are understood (M, L, H, V, Z and their
// relative forms); extra coordinate pairs after M or L continue the line.
func ParsePath(d string) ([]plan.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var (
		points []plan.Point
		cur    plan.Point
		start  plan.Point
	)

	matches := commandRe.FindAllStringSubmatch(d, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no path commands in %q", d)
	}

	for _, match := range matches {
		cmd := match[1]
		coords := parseCoords(match[2])
		relative := strings.ToLower(cmd) == cmd

		switch strings.ToUpper(cmd) {
		case "M", "L":
			for i := 0; i+1 < len(coords); i += 2 {
				next := plan.Point{X: coords[i], Y: coords[i+1]}
				if relative {
					next = cur.Add(next)
				}
				cur = next
				if i == 0 && strings.ToUpper(cmd) == "M" {
					start = cur
				}
				points = append(points, cur)
			}
		case "H":
			for _, x := range coords {
				if relative {
					cur.X += x
				} else {
					cur.X = x
				}
				points = append(points, cur)
			}
		case "V":
			for _, y := range coords {
				if relative {
					cur.Y += y
				} else {
					cur.Y = y
				}
				points = append(points, cur)
			}
		case "Z":
			// замыкаем контур на начало подпути
			if len(points) > 0 {
				cur = start
				points = append(points, start)
			}
		}
	}

	return points, nil
}

func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Разделитель: запятая или пробел
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))

	coords := make([]float64, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 64)
		if err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}
