package export

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// parseColor понимает "#rgb", "#rrggbb", "#rrggbbaa" и "rgb()/rgba()".
// Empty strings and "none" report false.
func parseColor(s string) (gg.RGBA, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return gg.RGBA{}, false
	case strings.HasPrefix(s, "#"):
		return gg.Hex(s), true
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseRGBFunc(s)
	}
	return gg.RGBA{}, false
}

func parseRGBFunc(s string) (gg.RGBA, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end <= open {
		return gg.RGBA{}, false
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return gg.RGBA{}, false
	}

	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		if i < 3 {
			f /= 255
		}
		v[i] = clamp(f, 0, 1)
	}
	return gg.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, true
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
