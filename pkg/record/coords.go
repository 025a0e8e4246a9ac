package record

import (
	"path/filepath"
	"strings"

	"github.com/package-url/packageurl-go"

	"github.com/matzehuels/portalsync/pkg/errors"
)

// Coordinates identify a published component by groupId and artifactId.
type Coordinates struct {
	GroupID    string
	ArtifactID string
}

// ParseCoordinates parses a "groupId:artifactId" pair. The split is strict:
// exactly one colon, and both halves must pass
// [errors.ValidateCoordinatePart].
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Coordinates{}, errors.New(errors.ErrCodeInvalidCoordinates,
			"malformed coords %q (expected groupId:artifactId)", s)
	}
	if err := errors.ValidateCoordinatePart("groupId", parts[0]); err != nil {
		return Coordinates{}, err
	}
	if err := errors.ValidateCoordinatePart("artifactId", parts[1]); err != nil {
		return Coordinates{}, err
	}
	return Coordinates{GroupID: parts[0], ArtifactID: parts[1]}, nil
}

// String returns "groupId:artifactId".
func (c Coordinates) String() string {
	return c.GroupID + ":" + c.ArtifactID
}

// GroupPath converts the groupId into slash-separated path segments,
// e.g. "org.grails.plugins" becomes "org/grails/plugins".
func (c Coordinates) GroupPath() string {
	return strings.ReplaceAll(c.GroupID, ".", "/")
}

// RecordPath returns where the record for c lives under root, following the
// <root>/<group path>/<artifactId><ext> layout.
func (c Coordinates) RecordPath(root, ext string) string {
	return filepath.Join(root, filepath.FromSlash(c.GroupPath()), c.ArtifactID+ext)
}

// PURL returns the package URL for c, e.g. "pkg:maven/org.grails.plugins/cache@5.0.0".
// An empty version yields a versionless purl.
func (c Coordinates) PURL(version string) string {
	return packageurl.NewPackageURL(packageurl.TypeMaven, c.GroupID, c.ArtifactID, version, nil, "").ToString()
}
