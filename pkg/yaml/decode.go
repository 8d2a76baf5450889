package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// Decoder reads YAML documents, converting parser failures into [*Error].
type Decoder struct {
	d      *yaml.Decoder
	source []byte
}

// NewDecoder creates a [Decoder] reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r),
	}
}

// NewBytesDecoder creates a [Decoder] for data. Errors it returns carry the
// source so they can be annotated.
func NewBytesDecoder(data []byte) *Decoder {
	d := NewDecoder(bytes.NewReader(data))
	d.source = data

	return d
}

// Decode reads the next document into v.
func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return NewError(errors.New(yamlErr.GetMessage()),
			WithToken(yamlErr.GetToken()),
			WithSource(d.source),
		)
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}
