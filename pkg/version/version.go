package version

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/portalsync/pkg/errors"
)

// Kind classifies a pre-release qualifier. Kinds are ordered by release
// maturity: Snapshot < Alpha < Beta < Milestone < ReleaseCandidate.
type Kind int

const (
	Snapshot Kind = iota
	Alpha
	Beta
	Milestone
	ReleaseCandidate
)

var kindNames = [...]string{
	Snapshot:         "snapshot",
	Alpha:            "alpha",
	Beta:             "beta",
	Milestone:        "milestone",
	ReleaseCandidate: "release-candidate",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Modifier is a recognized pre-release qualifier. Number is the numeric
// suffix and is always 0 for snapshots.
type Modifier struct {
	Kind   Kind
	Number int
}

// Version is a parsed version string.
//
// Raw keeps the input text verbatim; it is used for display and as the last
// ordering fallback. Two versions with equal numeric fields and modifiers are
// not necessarily equal: "1.0.0" and "1.0.0.RELEASE" differ by Raw.
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Modifier *Modifier // nil for final releases and unrecognized qualifiers
	Raw      string
}

var (
	versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?(?:[.-](.+))?$`)

	milestoneRegex = regexp.MustCompile(`^M(\d+)$`)
	rcRegex        = regexp.MustCompile(`^RC(\d+)$`)
	alphaRegex     = regexp.MustCompile(`^ALPHA(\d+)$`)
	betaRegex      = regexp.MustCompile(`^BETA(\d+)$`)
)

// Parse parses text of the form <major>.<minor>[.<patch>][<sep><qualifier>]
// where <sep> is "." or "-". Patch defaults to 0.
//
// The qualifier becomes a [Modifier] only when it exactly matches SNAPSHOT,
// BUILD-SNAPSHOT, M<n>, RC<n>, ALPHA<n> or BETA<n>. Any other qualifier is
// kept in Raw but ignored for ordering.
//
// Returns an error with code [errors.ErrCodeInvalidVersionFormat] when text
// does not match the grammar.
func Parse(text string) (Version, error) {
	m := versionRegex.FindStringSubmatch(text)
	if m == nil {
		return Version{}, errors.New(errors.ErrCodeInvalidVersionFormat, "invalid version format: %q", text)
	}

	v := Version{Raw: text}
	var err error
	if v.Major, err = strconv.Atoi(m[1]); err != nil {
		return Version{}, errors.Wrap(errors.ErrCodeInvalidVersionFormat, err, "invalid major version in %q", text)
	}
	if v.Minor, err = strconv.Atoi(m[2]); err != nil {
		return Version{}, errors.Wrap(errors.ErrCodeInvalidVersionFormat, err, "invalid minor version in %q", text)
	}
	if m[3] != "" {
		if v.Patch, err = strconv.Atoi(m[3]); err != nil {
			return Version{}, errors.Wrap(errors.ErrCodeInvalidVersionFormat, err, "invalid patch version in %q", text)
		}
	}
	if m[4] != "" {
		v.Modifier = parseModifier(m[4])
	}
	return v, nil
}

// MustParse is like [Parse] but panics on error. Intended for tests and
// package-level constants.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func parseModifier(qualifier string) *Modifier {
	if qualifier == "SNAPSHOT" || qualifier == "BUILD-SNAPSHOT" {
		return &Modifier{Kind: Snapshot}
	}
	patterns := []struct {
		re   *regexp.Regexp
		kind Kind
	}{
		{milestoneRegex, Milestone},
		{rcRegex, ReleaseCandidate},
		{alphaRegex, Alpha},
		{betaRegex, Beta},
	}
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(qualifier); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil
			}
			return &Modifier{Kind: p.kind, Number: n}
		}
	}
	return nil
}

// IsSnapshot reports whether v is a snapshot build. Besides a recognized
// snapshot modifier, any raw text containing "snapshot" in any case counts,
// which catches repositories that use non-standard tags.
func (v Version) IsSnapshot() bool {
	if v.Modifier != nil && v.Modifier.Kind == Snapshot {
		return true
	}
	return containsSnapshot(v.Raw)
}

// IsSnapshot reports whether text denotes a snapshot build. Text that does
// not parse as a version is checked with the substring rule alone.
func IsSnapshot(text string) bool {
	if v, err := Parse(text); err == nil {
		return v.IsSnapshot()
	}
	return containsSnapshot(text)
}

func containsSnapshot(s string) bool {
	return strings.Contains(strings.ToLower(s), "snapshot")
}

// String returns the raw version text.
func (v Version) String() string { return v.Raw }
