// Package config loads portalsync settings from an optional TOML file.
//
// A missing default file is not an error; every key has a default:
//
//	root = "plugins"
//	extension = ".yml"
//	output = "build/plugins.json"
//
//	[http]
//	connect_timeout = "20s"
//	read_timeout = "20s"
//	user_agent = "portalsync/<version>"
//	breaker_threshold = 5
package config

import (
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/portalsync/pkg/buildinfo"
	"github.com/matzehuels/portalsync/pkg/errors"
	"github.com/matzehuels/portalsync/pkg/httputil"
	"github.com/matzehuels/portalsync/pkg/index"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "portalsync.toml"

// Config is the full set of run settings.
type Config struct {
	Root      string `toml:"root"`
	Extension string `toml:"extension"`
	Output    string `toml:"output"`
	HTTP      HTTP   `toml:"http"`
}

// HTTP configures the remote repository client.
type HTTP struct {
	ConnectTimeout   Duration `toml:"connect_timeout"`
	ReadTimeout      Duration `toml:"read_timeout"`
	UserAgent        string   `toml:"user_agent"`
	BreakerThreshold int      `toml:"breaker_threshold"`
}

// Duration is a time.Duration written as text ("20s", "1m30s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the settings used when no file is present.
func Default() Config {
	h := httputil.DefaultConfig()
	return Config{
		Root:      "plugins",
		Extension: index.DefaultExtension,
		Output:    "build/plugins.json",
		HTTP: HTTP{
			ConnectTimeout:   Duration{h.ConnectTimeout},
			ReadTimeout:      Duration{h.ReadTimeout},
			UserAgent:        buildinfo.UserAgent(),
			BreakerThreshold: h.BreakerThreshold,
		},
	}
}

// Load reads path over the defaults. An empty path means [DefaultFile],
// which may be absent; an explicitly named file must exist. Unknown keys
// are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			if explicit {
				return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Default(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Root == "":
		return errors.New(errors.ErrCodeInvalidConfig, "root must not be empty")
	case c.Output == "":
		return errors.New(errors.ErrCodeInvalidConfig, "output must not be empty")
	case !strings.HasPrefix(c.Extension, "."):
		return errors.New(errors.ErrCodeInvalidConfig, "extension %q must start with a dot", c.Extension)
	case c.HTTP.ConnectTimeout.Duration < 0, c.HTTP.ReadTimeout.Duration < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "timeouts must not be negative")
	case c.HTTP.BreakerThreshold < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "breaker_threshold must not be negative")
	}
	return nil
}

// HTTPConfig converts the [http] section for [httputil.NewClient].
func (c Config) HTTPConfig() httputil.Config {
	return httputil.Config{
		ConnectTimeout:   c.HTTP.ConnectTimeout.Duration,
		ReadTimeout:      c.HTTP.ReadTimeout.Duration,
		UserAgent:        c.HTTP.UserAgent,
		BreakerThreshold: c.HTTP.BreakerThreshold,
	}
}
