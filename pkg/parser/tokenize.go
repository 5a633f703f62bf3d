package parser

import "strings"

// tokenCutset is stripped from both ends of every token.
const tokenCutset = " \t\n\r"

func stripLine(s string) string {
	return strings.TrimSpace(s)
}

func (c Conventions) isComment(line string) bool {
	return c.Comments != "" && strings.HasPrefix(line, c.Comments)
}

// tokens splits a stripped line on the delimiter and drops empty tokens.
func (c Conventions) tokens(line string) []string {
	var parts []string
	if c.Delimiter == "" {
		parts = strings.Fields(line)
	} else {
		parts = strings.Split(line, c.Delimiter)
	}

	out := parts[:0]
	for _, p := range parts {
		if p = strings.Trim(p, tokenCutset); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// isMarker reports whether a stripped line is exactly one of names.
func isMarker(line string, names ...string) bool {
	for _, n := range names {
		if line == n {
			return true
		}
	}
	return false
}
