// Package config provides configuration loading and validation for grdecl.
package config

import "github.com/lanhill/grdecl/pkg/parser"

// Config is the root configuration structure loaded from YAML or HCL.
type Config struct {
	// Sources are GRDECL files or glob patterns, read in order.
	Sources []string `yaml:"sources,omitempty"`

	// Keywords are the sections to extract, in output order.
	Keywords []string `yaml:"keywords"`

	// Comments is the comment-line prefix; empty disables comments.
	Comments string `yaml:"comments"`

	// Delimiter separates tokens; empty splits on any whitespace.
	Delimiter string `yaml:"delimiter"`

	// Terminator ends a section.
	Terminator string `yaml:"terminator"`

	// Cast is int, float, or empty for the natural representation.
	Cast string `yaml:"cast,omitempty"`

	// Dimensions overrides sniffing with an explicit [nx, ny, nz].
	Dimensions []int `yaml:"dimensions,omitempty,flow"`

	// Strict makes an unterminated section an error.
	Strict bool `yaml:"strict,omitempty"`

	// Merge combines the per-file results into one.
	Merge bool `yaml:"merge,omitempty"`

	// compiled values (populated during validation)
	cast       parser.Cast
	dimensions *parser.Dimensions
}

// Conventions returns the configured textual conventions.
func (c *Config) Conventions() parser.Conventions {
	return parser.Conventions{
		Comments:   c.Comments,
		Delimiter:  c.Delimiter,
		Terminator: c.Terminator,
	}
}

// ParsedCast returns the cast parsed during validation.
func (c *Config) ParsedCast() parser.Cast {
	return c.cast
}

// ParsedDimensions returns the explicit dimensions, or nil to sniff them.
func (c *Config) ParsedDimensions() *parser.Dimensions {
	return c.dimensions
}

// Request builds an extraction request from a validated config.
func (c *Config) Request() parser.Request {
	req := parser.Request{
		Conventions: c.Conventions(),
		Keywords:    append([]string(nil), c.Keywords...),
		Cast:        c.cast,
		Strict:      c.Strict,
	}
	if c.dimensions != nil {
		d := *c.dimensions
		req.Dimensions = &d
	}
	return req
}

// hclConfig mirrors Config for gohcl. Pointers tell unset attributes apart
// from explicit empty strings.
type hclConfig struct {
	Sources    []string `hcl:"sources,optional"`
	Keywords   []string `hcl:"keywords,optional"`
	Comments   *string  `hcl:"comments,optional"`
	Delimiter  *string  `hcl:"delimiter,optional"`
	Terminator *string  `hcl:"terminator,optional"`
	Cast       *string  `hcl:"cast,optional"`
	Dimensions []int    `hcl:"dimensions,optional"`
	Strict     *bool    `hcl:"strict,optional"`
	Merge      *bool    `hcl:"merge,optional"`
}

func (h *hclConfig) applyTo(c *Config) {
	if h.Sources != nil {
		c.Sources = h.Sources
	}
	if h.Keywords != nil {
		c.Keywords = h.Keywords
	}
	if h.Comments != nil {
		c.Comments = *h.Comments
	}
	if h.Delimiter != nil {
		c.Delimiter = *h.Delimiter
	}
	if h.Terminator != nil {
		c.Terminator = *h.Terminator
	}
	if h.Cast != nil {
		c.Cast = *h.Cast
	}
	if h.Dimensions != nil {
		c.Dimensions = h.Dimensions
	}
	if h.Strict != nil {
		c.Strict = *h.Strict
	}
	if h.Merge != nil {
		c.Merge = *h.Merge
	}
}
