package config

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/dapnet/pkg/dapnet"
	"github.com/dmitrijs2005/dapnet/pkg/sanitize"
)

// Non-ASCII policy names accepted in files and flags.
const (
	PolicyKeep    = "keep"
	PolicyRemove  = "remove"
	PolicyReplace = "replace"
)

// Config holds runtime settings for the dapnet CLI.
type Config struct {
	APIURL   string
	Username string
	Password string

	// Timeout bounds a single API request. Zero means no timeout.
	Timeout time.Duration

	HistoryDSN string
	LogLevel   string

	MaxLength   int
	Ellipsis    string
	NonASCII    string
	Replacement string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = dapnet.DefaultBaseURL
	c.Timeout = 10 * time.Second
	c.HistoryDSN = "dapnet-history.db"
	c.LogLevel = "info"
	c.MaxLength = sanitize.DefaultMaxLength
	c.Ellipsis = sanitize.DefaultEllipsis
	c.NonASCII = PolicyReplace
	c.Replacement = string(sanitize.DefaultReplacement)
}

// LoadConfig constructs a Config from defaults, file, environment and flags,
// later sources taking precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// SanitizeOptions converts the message settings to sanitize.Options.
func (c *Config) SanitizeOptions() (sanitize.Options, error) {
	var policy sanitize.NonASCIIPolicy

	switch c.NonASCII {
	case PolicyKeep:
		policy = sanitize.KeepNonASCII()
	case PolicyRemove:
		policy = sanitize.RemoveNonASCII()
	case PolicyReplace, "":
		r := sanitize.DefaultReplacement
		if c.Replacement != "" {
			if utf8.RuneCountInString(c.Replacement) != 1 {
				return sanitize.Options{}, fmt.Errorf("replacement must be a single character, got %q", c.Replacement)
			}
			r, _ = utf8.DecodeRuneInString(c.Replacement)
		}
		policy = sanitize.ReplaceNonASCII(r)
	default:
		return sanitize.Options{}, fmt.Errorf("unknown non-ascii policy %q", c.NonASCII)
	}

	return sanitize.NewOptions(
		sanitize.WithMaxLength(c.MaxLength),
		sanitize.WithEllipsis(c.Ellipsis),
		sanitize.WithNonASCIIPolicy(policy),
	), nil
}
