package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/dapnet/internal/flagx"
	"github.com/dmitrijs2005/dapnet/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration, shared by the JSON
// and YAML loaders. Zero values leave the corresponding Config field alone.
type FileConfig struct {
	APIURL      string         `json:"api_url" yaml:"api_url"`
	Username    string         `json:"username" yaml:"username"`
	Password    string         `json:"password" yaml:"password"`
	Timeout     timex.Duration `json:"timeout" yaml:"timeout"`
	HistoryDSN  string         `json:"history_dsn" yaml:"history_dsn"`
	LogLevel    string         `json:"log_level" yaml:"log_level"`
	MaxLength   int            `json:"max_length" yaml:"max_length"`
	Ellipsis    *string        `json:"ellipsis" yaml:"ellipsis"`
	NonASCII    string         `json:"non_ascii" yaml:"non_ascii"`
	Replacement string         `json:"replacement" yaml:"replacement"`
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// parseFile overlays Config with values from the file named by -c/-config.
// Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.APIURL, fc.APIURL)
	setString(&cfg.Username, fc.Username)
	setString(&cfg.Password, fc.Password)
	setString(&cfg.HistoryDSN, fc.HistoryDSN)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.NonASCII, fc.NonASCII)
	setString(&cfg.Replacement, fc.Replacement)

	if fc.Timeout.Duration > 0 {
		cfg.Timeout = fc.Timeout.Duration
	}
	if fc.MaxLength > 0 {
		cfg.MaxLength = fc.MaxLength
	}
	// an explicit empty ellipsis is allowed
	if fc.Ellipsis != nil {
		cfg.Ellipsis = *fc.Ellipsis
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
