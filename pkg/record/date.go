package record

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/portalsync/pkg/errors"
)

// textLayouts are tried, in order, when a date is stored as a string rather
// than a native timestamp.
var textLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date is a release timestamp on a [VersionEntry].
//
// It decodes from either a native YAML timestamp or a quoted string in one of
// a handful of common layouts. Dates that arrived as text are marked
// [Date.Repaired] and are always written back as native timestamps.
type Date struct {
	time.Time
	repaired bool
}

// NewDate returns a Date normalized to UTC with second precision.
func NewDate(t time.Time) *Date {
	return &Date{Time: t.UTC().Truncate(time.Second)}
}

// ParseDate parses text using the accepted textual layouts.
func ParseDate(text string) (*Date, error) {
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return &Date{Time: t.UTC(), repaired: true}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidRecord, "unrecognized date %q", text)
}

// Repaired reports whether the value was decoded from text.
func (d *Date) Repaired() bool { return d != nil && d.repaired }

// UnmarshalYAML implements [yaml.Unmarshaler].
func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.New(errors.ErrCodeInvalidRecord, "line %d: date must be a scalar", n.Line)
	}
	if n.ShortTag() == "!!timestamp" {
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecord, err, "line %d: invalid date", n.Line)
		}
		*d = Date{Time: t.UTC()}
		return nil
	}
	parsed, err := ParseDate(n.Value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRecord, err, "line %d", n.Line)
	}
	*d = *parsed
	return nil
}

// MarshalYAML implements [yaml.Marshaler]. The value is tagged so it
// round-trips as a timestamp rather than a string, and keeps any fractional
// seconds so stored dates are never truncated.
func (d Date) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!timestamp",
		Value: d.UTC().Format(time.RFC3339Nano),
	}, nil
}

// MarshalJSON writes the date as a UTC RFC 3339 string. Fractional seconds
// are kept when present.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts the same textual layouts as YAML decoding.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = Date{Time: parsed.Time}
	return nil
}

// Repair clears the repaired flag so the value persists as a typed
// timestamp. It reports whether anything changed.
func (d *Date) Repair() bool {
	if d == nil || !d.repaired {
		return false
	}
	d.repaired = false
	return true
}
