package maven

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/portalsync/pkg/httputil"
	"github.com/matzehuels/portalsync/pkg/integrations"
)

// Client reads version metadata and artifacts from Maven-layout
// repositories. The repository base URL is passed per call because every
// plugin record names its own repository.
//
// Lookups never fail the caller: missing resources, transport errors and
// unreadable documents are logged and reported as "nothing found". The only
// error surfaced is context cancellation.
type Client struct {
	*integrations.Client
	logger *log.Logger
}

// NewClient creates a Maven client on top of h. A nil logger falls back to
// log.Default().
func NewClient(h *httputil.Client, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		Client: integrations.NewClient(h, map[string]string{"Accept": "*/*"}),
		logger: logger,
	}
}

// Info is what could be learned about one published version. Zero fields
// mean the value was not found.
type Info struct {
	Date          time.Time
	GrailsVersion string
}

// Empty reports whether neither a date nor a compatibility range was found.
func (i Info) Empty() bool {
	return i.Date.IsZero() && i.GrailsVersion == ""
}
