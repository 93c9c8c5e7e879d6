package storage

import (
	"net/url"
	"strings"

	"boscoin.io/rankchoice/lib/errors"
)

// Config is the parsed storage uri. Supported schemes are `memory://` and
// `file:///<path>`.
type Config struct {
	Scheme string
	Path   string

	raw string
}

func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, errors.StorageInvalidConfig.Clone().SetData("error", err.Error())
	}

	config := &Config{Scheme: strings.ToLower(parsed.Scheme), raw: s}

	switch config.Scheme {
	case "memory":
	case "file":
		config.Path = parsed.Path
		if len(config.Path) < 1 {
			return nil, errors.StorageInvalidConfig.Clone().SetData("error", "empty path")
		}
	default:
		return nil, errors.StorageInvalidConfig.Clone().SetData("scheme", parsed.Scheme)
	}

	return config, nil
}

func (c Config) String() string {
	return c.raw
}
