package document

import (
	"embed"
	"errors"
	"fmt"
)

var ErrUnknownTemplate = errors.New("unknown template")

//go:embed templates/*.json
var templateFS embed.FS

// Template describes one bundled starter layout.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var catalog = []Template{
	{ID: "blank", Name: "Blank Canvas", Description: "Start from scratch"},
	{ID: "studio", Name: "Studio Apartment", Description: "Simple studio layout (500 sq ft)"},
	{ID: "two-bedroom", Name: "2-Bedroom House", Description: "Two bedroom layout (1000 sq ft)"},
	{ID: "office", Name: "Small Office", Description: "Office space layout (800 sq ft)"},
}

// Templates возвращает каталог шаблонов в порядке показа.
func Templates() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// LoadTemplate читает встроенный шаблон по id.
func LoadTemplate(id string) (Document, error) {
	found := false
	for _, t := range catalog {
		if t.ID == id {
			found = true
			break
		}
	}
	if !found {
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}

	data, err := templateFS.ReadFile("templates/" + id + ".json")
	if err != nil {
		return Document{}, fmt.Errorf("failed to read template %s: %w", id, err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("template %s: %w", id, err)
	}
	return doc, nil
}
