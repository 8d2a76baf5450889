// Package schema generates JSON schemas for hop's configuration types.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator reflects a JSON schema from a Go value.
type Generator struct {
	reflector *jsonschema.Reflector
	v         any
	id        string
	title     string
}

// Opt configures a [Generator].
type Opt func(g *Generator)

// WithID sets the schema's $id.
func WithID(id string) Opt {
	return func(g *Generator) {
		g.id = id
	}
}

// WithTitle sets the schema's title.
func WithTitle(title string) Opt {
	return func(g *Generator) {
		g.title = title
	}
}

// NewGenerator creates a [Generator] for v, which should be a pointer to the
// root configuration struct.
func NewGenerator(v any, opts ...Opt) *Generator {
	g := &Generator{
		v: v,
		reflector: &jsonschema.Reflector{
			ExpandedStruct:             true,
			DoNotReference:             true,
			RequiredFromJSONSchemaTags: false,
		},
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Reflect returns the schema for the generator's value.
func (g *Generator) Reflect() *jsonschema.Schema {
	s := g.reflector.Reflect(g.v)
	if g.id != "" {
		s.ID = jsonschema.ID(g.id)
	}

	if g.title != "" {
		s.Title = g.title
	}

	return s
}

// Generate returns the schema as indented JSON.
func (g *Generator) Generate() ([]byte, error) {
	data, err := json.MarshalIndent(g.Reflect(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return data, nil
}
