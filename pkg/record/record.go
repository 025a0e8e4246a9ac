package record

import (
	"encoding/json"

	"github.com/github/go-spdx/v2/spdxexp"

	"github.com/matzehuels/portalsync/pkg/errors"
)

// VersionEntry is one published release of a plugin.
//
// Entries are append-only: once written, later runs never alter their
// fields. Coords and MavenRepo override the plugin's source for this one
// entry and are usually empty.
type VersionEntry struct {
	Version       string `yaml:"version" json:"version"`
	Date          *Date  `yaml:"date,omitempty" json:"date,omitempty"`
	GrailsVersion string `yaml:"grailsVersion,omitempty" json:"grailsVersion,omitempty"`
	Coords        string `yaml:"coords,omitempty" json:"coords,omitempty"`
	MavenRepo     string `yaml:"maven-repo,omitempty" json:"maven-repo,omitempty"`
}

// Plugin is a curated catalog record.
//
// Keys the catalog does not know about are kept in Extra and written back
// unchanged, so hand-added fields survive a reconcile. They are also
// carried into the JSON snapshot after the known fields.
type Plugin struct {
	Name       string         `yaml:"name" json:"name"`
	Desc       string         `yaml:"desc,omitempty" json:"desc,omitempty"`
	Coords     string         `yaml:"coords" json:"coords"`
	Owner      string         `yaml:"owner,omitempty" json:"owner,omitempty"`
	VCS        string         `yaml:"vcs,omitempty" json:"vcs,omitempty"`
	Docs       string         `yaml:"docs,omitempty" json:"docs,omitempty"`
	MavenRepo  string         `yaml:"maven-repo,omitempty" json:"maven-repo,omitempty"`
	Labels     []string       `yaml:"labels,omitempty" json:"labels,omitempty"`
	Licenses   []string       `yaml:"licenses,omitempty" json:"licenses,omitempty"`
	Deprecated string         `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Versions   []VersionEntry `yaml:"versions" json:"versions"`
	Extra      map[string]any `yaml:",inline" json:"-"`
}

// MarshalJSON encodes the known fields in declaration order followed by
// the Extra keys in sorted order.
func (p Plugin) MarshalJSON() ([]byte, error) {
	type plain Plugin
	data, err := json.Marshal(plain(p))
	if err != nil || len(p.Extra) == 0 {
		return data, err
	}
	extra, err := json.Marshal(p.Extra)
	if err != nil {
		return nil, err
	}
	// Splice {"name":...} and {"k":...} into {"name":...,"k":...}.
	out := make([]byte, 0, len(data)+len(extra))
	out = append(out, data[:len(data)-1]...)
	out = append(out, ',')
	return append(out, extra[1:]...), nil
}

// Coordinates parses the record's coords field.
func (p *Plugin) Coordinates() (Coordinates, error) {
	if p.Coords == "" {
		return Coordinates{}, errors.New(errors.ErrCodeInvalidCoordinates, "missing coords")
	}
	return ParseCoordinates(p.Coords)
}

// Validate checks the fields the reconciler depends on. A record that fails
// validation is excluded from the index.
func (p *Plugin) Validate() error {
	if _, err := p.Coordinates(); err != nil {
		return err
	}
	if p.MavenRepo != "" {
		if err := errors.ValidateURL(p.MavenRepo); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecord, err, "invalid maven-repo %q", p.MavenRepo)
		}
	}
	for i, v := range p.Versions {
		if v.Version == "" {
			return errors.New(errors.ErrCodeInvalidRecord, "versions[%d]: missing version", i)
		}
	}
	return nil
}

// UnknownLicenses returns the license identifiers that are not valid SPDX
// expressions. These are reported but do not invalidate the record.
func (p *Plugin) UnknownLicenses() []string {
	if len(p.Licenses) == 0 {
		return nil
	}
	ok, invalid := spdxexp.ValidateLicenses(p.Licenses)
	if ok {
		return nil
	}
	return invalid
}

// IsDefaultSource reports whether v resolves to the plugin's own coords and
// repository, i.e. carries no override pointing somewhere else.
func (p *Plugin) IsDefaultSource(v VersionEntry) bool {
	return (v.Coords == "" || v.Coords == p.Coords) &&
		(v.MavenRepo == "" || v.MavenRepo == p.MavenRepo)
}

// HasVersion reports whether text is already listed under the default source.
//
// Only default-source entries count. An entry whose coords or maven-repo
// override points elsewhere describes a different artifact, so the same
// version text from the plugin's own repository is still added next to it.
func (p *Plugin) HasVersion(text string) bool {
	for _, v := range p.Versions {
		if v.Version == text && p.IsDefaultSource(v) {
			return true
		}
	}
	return false
}

// RepairDates converts dates that were stored as text into typed values and
// returns how many were changed.
func (p *Plugin) RepairDates() int {
	n := 0
	for i := range p.Versions {
		if p.Versions[i].Date.Repair() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of p.
func (p *Plugin) Clone() *Plugin {
	c := *p
	c.Labels = append([]string(nil), p.Labels...)
	c.Licenses = append([]string(nil), p.Licenses...)
	c.Versions = make([]VersionEntry, len(p.Versions))
	for i, v := range p.Versions {
		if v.Date != nil {
			d := *v.Date
			v.Date = &d
		}
		c.Versions[i] = v
	}
	if p.Extra != nil {
		c.Extra = make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}
