package maven

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// descriptorPaths are the archive entries searched for a plugin descriptor,
// current layout first.
var descriptorPaths = []string{
	"META-INF/grails-plugin.xml",
	"plugin.xml",
}

var (
	errCorruptArchive = errors.New("corrupt archive")
	errNoDescriptor   = errors.New("no plugin descriptor")
	errNoCompat       = errors.New("descriptor has no grailsVersion")
)

// pluginDescriptor matches both descriptor generations:
//
//	<plugin name="cache" grailsVersion="5.0.0 > *">...</plugin>
//	<plugin><grailsVersion>2.0 > *</grailsVersion></plugin>
type pluginDescriptor struct {
	XMLName        xml.Name
	AttrVersion    string `xml:"grailsVersion,attr"`
	ElementVersion string `xml:"grailsVersion"`
}

// compatibility prefers the attribute form.
func (d pluginDescriptor) compatibility() string {
	if v := strings.TrimSpace(d.AttrVersion); v != "" {
		return v
	}
	return strings.TrimSpace(d.ElementVersion)
}

// readCompatibility finds the first descriptor present in zr and returns its
// compatibility range. Only the first descriptor found is consulted.
func readCompatibility(zr *zip.Reader) (string, error) {
	for _, name := range descriptorPaths {
		f := findEntry(zr, name)
		if f == nil {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", errors.Join(errCorruptArchive, err)
		}
		var d pluginDescriptor
		err = xml.NewDecoder(rc).Decode(&d)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", name, err)
		}
		if v := d.compatibility(); v != "" {
			return v, nil
		}
		return "", errNoCompat
	}
	return "", errNoDescriptor
}

func findEntry(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
