package record

import (
	"bytes"
	stderrors "errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/portalsync/pkg/errors"
)

// Decode parses a single YAML record. Structural problems (not a mapping,
// wrong field types, bad dates) are reported as [errors.ErrCodeInvalidRecord];
// semantic checks are left to [Plugin.Validate].
func Decode(r io.Reader) (*Plugin, error) {
	var p Plugin
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.New(errors.ErrCodeInvalidRecord, "empty record")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "decode record")
	}
	if p.Versions == nil {
		p.Versions = []VersionEntry{}
	}
	return &p, nil
}

// Encode writes p in canonical form: fixed field order, two-space indent,
// typed timestamps.
func Encode(w io.Writer, p *Plugin) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode record")
	}
	return enc.Close()
}

// Marshal is a convenience wrapper around [Encode].
func Marshal(p *Plugin) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
