package config

import (
	"os"
	"strings"

	"github.com/lanhill/grdecl/pkg/parser"
)

// Environment variable names.
const (
	EnvSources = "GRDECL_SOURCES"
	EnvCast    = "GRDECL_CAST"
)

// DefaultConfig returns a configuration with the standard GRDECL conventions.
func DefaultConfig() *Config {
	return &Config{
		Sources:    []string{},
		Keywords:   []string{},
		Comments:   parser.DefaultComments,
		Delimiter:  parser.DefaultDelimiter,
		Terminator: parser.DefaultTerminator,
	}
}

// FromEnvironment returns the defaults with environment overrides applied,
// for runs without a config file. The result is not validated.
func FromEnvironment() *Config {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	return cfg
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if sources := os.Getenv(EnvSources); sources != "" {
		c.Sources = splitList(sources)
	}
	if cast := os.Getenv(EnvCast); cast != "" {
		c.Cast = cast
	}
}

// splitList splits a comma-separated list and drops empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
