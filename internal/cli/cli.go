// Package cli implements the portalsync command-line interface.
package cli

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/matzehuels/portalsync/pkg/config"
	"github.com/matzehuels/portalsync/pkg/httputil"
	"github.com/matzehuels/portalsync/pkg/index"
	"github.com/matzehuels/portalsync/pkg/integrations/maven"
	"github.com/matzehuels/portalsync/pkg/reconcile"
	"github.com/matzehuels/portalsync/pkg/record"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "portalsync"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the root command.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Component Wiring
// =============================================================================

// components is everything a run needs, built from one config.
type components struct {
	http    *httputil.Client
	builder *index.Builder
}

// newComponents wires the record store, repository client, reconciler and
// index builder. Paths handed to the builder must be absolute.
func newComponents(cfg config.Config, logger *log.Logger) *components {
	store := record.NewStore(osfs.New("/"))
	hc := httputil.NewClient(cfg.HTTPConfig())
	r := reconcile.New(maven.NewClient(hc, logger), store, logger)
	return &components{http: hc, builder: index.New(r, cfg.Extension)}
}

// absPath resolves p against the working directory.
func absPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Abs(p)
}
