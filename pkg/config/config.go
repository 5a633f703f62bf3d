package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/lanhill/grdecl/pkg/parser"
)

// Load reads and validates a configuration file. Files ending in .hcl are
// decoded as HCL, everything else as YAML.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Read decodes a configuration file over the defaults and applies
// environment overrides without validating, so callers can layer further
// settings before calling Validate.
func Read(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		err = decodeHCL(data, path, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	return cfg, nil
}

func decodeHCL(data []byte, path string, cfg *Config) error {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return diags
	}

	var parsed hclConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return diags
	}

	parsed.applyTo(cfg)
	return nil
}

// Validate checks a configuration for errors and parses cast and dimensions.
func Validate(cfg *Config) error {
	if len(cfg.Keywords) == 0 {
		return errors.New("keywords: at least one keyword is required")
	}

	for i, kw := range cfg.Keywords {
		if err := validateKeyword(kw); err != nil {
			return fmt.Errorf("keywords[%d] (%q): %w", i, kw, err)
		}
	}

	if cfg.Terminator == "" {
		return errors.New("terminator: must not be empty")
	}
	if strings.TrimSpace(cfg.Terminator) != cfg.Terminator {
		return fmt.Errorf("terminator: %q must not contain surrounding whitespace", cfg.Terminator)
	}

	cast, err := parser.ParseCast(cfg.Cast)
	if err != nil {
		return fmt.Errorf("cast: %w", err)
	}
	cfg.cast = cast

	cfg.dimensions = nil
	if len(cfg.Dimensions) > 0 {
		dims, err := validateDimensions(cfg.Dimensions)
		if err != nil {
			return fmt.Errorf("dimensions: %w", err)
		}
		cfg.dimensions = dims
	}

	return nil
}

func validateKeyword(kw string) error {
	if kw == "" {
		return errors.New("must not be empty")
	}
	// Markers are matched after stripping, so padded names never match.
	if strings.TrimSpace(kw) != kw {
		return errors.New("must not contain surrounding whitespace")
	}
	return nil
}

func validateDimensions(dims []int) (*parser.Dimensions, error) {
	if len(dims) != 3 {
		return nil, fmt.Errorf("want 3 values [nx, ny, nz], got %d", len(dims))
	}
	for i, n := range dims {
		if n <= 0 {
			return nil, fmt.Errorf("value %d must be positive, got %d", i, n)
		}
	}
	return &parser.Dimensions{NX: dims[0], NY: dims[1], NZ: dims[2]}, nil
}

// Encode renders cfg as YAML with a leading comment header.
func Encode(cfg *Config, header string) ([]byte, error) {
	var buf bytes.Buffer
	for _, line := range strings.Split(strings.TrimSpace(header), "\n") {
		if line == "" {
			buf.WriteString("#\n")
			continue
		}
		buf.WriteString("# " + line + "\n")
	}
	if header != "" {
		buf.WriteString("\n")
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
