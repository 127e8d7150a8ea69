// Package localize loads label files and applies them to document elements.
//
// A label file is a YAML map from element ID to text:
//
//	home: Accueil
//	home.back: ‹ Retour
package localize

import (
	"fmt"
	"os"

	"panelnav/internal/document"

	"gopkg.in/yaml.v3"
)

// Labels maps element IDs to text.
type Labels map[string]string

// Load reads a label file.
func Load(path string) (Labels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	var labels Labels
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("parse labels %s: %w", path, err)
	}
	return labels, nil
}

// Apply sets the label of every element named in labels and returns how many changed.
// Panel labels also retitle the panel header.
func Apply(doc *document.Document, labels Labels) int {
	changed := 0
	for id, text := range labels {
		el := doc.ByID(id)
		if el == nil || el.Label == text {
			continue
		}
		el.Label = text
		changed++
		if el.Role == document.RolePanel {
			if h := el.Query(document.RoleHeader); h != nil {
				h.Label = text
			}
		}
	}
	return changed
}
