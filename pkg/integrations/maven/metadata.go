package maven

import (
	"context"
	"errors"

	"github.com/matzehuels/portalsync/pkg/integrations"
	"github.com/matzehuels/portalsync/pkg/record"
	"github.com/matzehuels/portalsync/pkg/version"
)

const metadataFile = "maven-metadata.xml"

type metadata struct {
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Versioning versioning `xml:"versioning"`
}

type versioning struct {
	Latest      string   `xml:"latest"`
	Release     string   `xml:"release"`
	Versions    versions `xml:"versions"`
	LastUpdated string   `xml:"lastUpdated"`
}

type versions struct {
	Version []string `xml:"version"`
}

// MetadataURL returns <base>/<group path>/<artifactId>/maven-metadata.xml.
func MetadataURL(base string, c record.Coordinates) string {
	return integrations.JoinURL(base, c.GroupPath(), c.ArtifactID, metadataFile)
}

// FetchVersions returns the release versions listed in the repository's
// metadata document for c.
//
// Version texts that do not parse are logged and dropped, as are snapshots.
// The result is in document order, which is not necessarily version order.
// A missing or unreadable document yields an empty result; the returned
// error is non-nil only when ctx is done.
func (c *Client) FetchVersions(ctx context.Context, base string, coords record.Coordinates) ([]version.Version, error) {
	url := MetadataURL(base, coords)
	logger := c.logger.With("coords", coords.String())

	var doc metadata
	if err := c.GetXML(ctx, url, &doc); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, integrations.ErrNotFound) {
			logger.Warn("no metadata document", "url", url)
		} else {
			logger.Warn("metadata fetch failed", "url", url, "err", err)
		}
		return nil, nil
	}

	var out []version.Version
	for _, text := range doc.Versioning.Versions.Version {
		v, err := version.Parse(text)
		if err != nil {
			logger.Warn("skipping unparsable version", "version", text)
			continue
		}
		if v.IsSnapshot() {
			logger.Debug("skipping snapshot", "version", text)
			continue
		}
		out = append(out, v)
	}
	logger.Debug("fetched metadata", "listed", len(doc.Versioning.Versions.Version), "releases", len(out))
	return out, nil
}
