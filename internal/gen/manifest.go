package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML alternative to source directives: a list of type
// names with capability lists, plus an optional output path.
type Manifest struct {
	// Output overrides the generated file path, resolved against the
	// package directory unless absolute.
	Output string `yaml:"output"`

	Types []ManifestType `yaml:"types"`
}

// ManifestType is one derivation entry.
type ManifestType struct {
	Name         string   `yaml:"name"`
	Capabilities []string `yaml:"capabilities"`

	// Shape overrides enum/newtype classification; empty means automatic.
	Shape string `yaml:"shape"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Types) == 0 {
		return nil, fmt.Errorf("manifest %s lists no types", path)
	}
	for i, t := range m.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("manifest %s: types[%d] has no name", path, i)
		}
		switch t.Shape {
		case "", "newtype", "enum":
		default:
			return nil, fmt.Errorf("manifest %s: types[%d] (%s): unknown shape %q (want newtype or enum)", path, i, t.Name, t.Shape)
		}
	}
	return &m, nil
}

// Requests converts the manifest entries into derivation requests.
// Capability names are passed through unvalidated; Resolve rejects
// unknown ones.
func (m *Manifest) Requests() []Request {
	reqs := make([]Request, 0, len(m.Types))
	for _, t := range m.Types {
		req := Request{TypeName: t.Name, ForceShape: t.Shape}
		for _, c := range t.Capabilities {
			req.Caps = append(req.Caps, Capability(c))
		}
		reqs = append(reqs, req)
	}
	return reqs
}
