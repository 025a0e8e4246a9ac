package version

import (
	"slices"
	"testing"

	"github.com/matzehuels/portalsync/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		major    int
		minor    int
		patch    int
		modifier *Modifier
	}{
		{"4.0.1", 4, 0, 1, nil},
		{"1.2", 1, 2, 0, nil},
		{"10.20.30", 10, 20, 30, nil},
		{"4.0.2-SNAPSHOT", 4, 0, 2, &Modifier{Kind: Snapshot}},
		{"1.0.0.BUILD-SNAPSHOT", 1, 0, 0, &Modifier{Kind: Snapshot}},
		{"3.0.0.M2", 3, 0, 0, &Modifier{Kind: Milestone, Number: 2}},
		{"5.0.0-RC1", 5, 0, 0, &Modifier{Kind: ReleaseCandidate, Number: 1}},
		{"2.1.ALPHA3", 2, 1, 0, &Modifier{Kind: Alpha, Number: 3}},
		{"2.1.0-BETA12", 2, 1, 0, &Modifier{Kind: Beta, Number: 12}},
		{"1.0.0.RELEASE", 1, 0, 0, nil},
		{"1.0-mysnapshot", 1, 0, 0, nil},
		{"1.0.0.rc1", 1, 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
				t.Errorf("Parse(%q) = %d.%d.%d, want %d.%d.%d",
					tt.input, v.Major, v.Minor, v.Patch, tt.major, tt.minor, tt.patch)
			}
			switch {
			case tt.modifier == nil && v.Modifier != nil:
				t.Errorf("Parse(%q) modifier = %+v, want none", tt.input, *v.Modifier)
			case tt.modifier != nil && v.Modifier == nil:
				t.Errorf("Parse(%q) modifier = none, want %+v", tt.input, *tt.modifier)
			case tt.modifier != nil && *v.Modifier != *tt.modifier:
				t.Errorf("Parse(%q) modifier = %+v, want %+v", tt.input, *v.Modifier, *tt.modifier)
			}
			if v.Raw != tt.input {
				t.Errorf("Raw = %q, want %q", v.Raw, tt.input)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{"abc", "", "1", "1.", "1.x", "v1.0.0", "1.0-", "BUILD-SNAPSHOT", " 1.0"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", input)
			}
			if !errors.Is(err, errors.ErrCodeInvalidVersionFormat) {
				t.Errorf("Parse(%q) code = %v, want %v", input, errors.GetCode(err), errors.ErrCodeInvalidVersionFormat)
			}
		})
	}
}

func TestIsSnapshot(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"4.0.2-SNAPSHOT", true},
		{"1.0.0.BUILD-SNAPSHOT", true},
		{"BUILD-SNAPSHOT", true},
		{"1.0-mysnapshot", true},
		{"2.0.0.snapshot-20240101", true},
		{"4.0.1", false},
		{"3.0.0.M2", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsSnapshot(tt.input); got != tt.want {
				t.Errorf("IsSnapshot(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionIsSnapshotFallback(t *testing.T) {
	v := MustParse("1.0-mysnapshot")
	if v.Modifier != nil {
		t.Fatalf("expected no modifier for unrecognized qualifier, got %+v", *v.Modifier)
	}
	if !v.IsSnapshot() {
		t.Error("IsSnapshot() = false, want true from substring fallback")
	}
}

func TestKindString(t *testing.T) {
	if got := ReleaseCandidate.String(); got != "release-candidate" {
		t.Errorf("ReleaseCandidate.String() = %q", got)
	}
	if got := Kind(42).String(); got != "unknown" {
		t.Errorf("Kind(42).String() = %q", got)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("not-a-version")
}

func TestSortAscending(t *testing.T) {
	versions := []Version{
		MustParse("4.0.1"),
		MustParse("4.0.1-SNAPSHOT"),
		MustParse("4.0.1.RC1"),
		MustParse("3.9.12"),
		MustParse("4.0.1.M1"),
		MustParse("4.0.1.BETA1"),
		MustParse("4.0.1.ALPHA2"),
		MustParse("4.0.1.RC2"),
		MustParse("4.0.1.ALPHA1"),
		MustParse("4.1"),
	}
	slices.SortFunc(versions, Compare)

	want := []string{
		"3.9.12",
		"4.0.1-SNAPSHOT",
		"4.0.1.ALPHA1",
		"4.0.1.ALPHA2",
		"4.0.1.BETA1",
		"4.0.1.M1",
		"4.0.1.RC1",
		"4.0.1.RC2",
		"4.0.1",
		"4.1",
	}
	for i, v := range versions {
		if v.Raw != want[i] {
			t.Errorf("position %d = %q, want %q", i, v.Raw, want[i])
		}
	}
}
