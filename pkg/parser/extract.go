package parser

import (
	"context"
	"fmt"

	"github.com/lanhill/grdecl/internal/ctxlog"
)

// sectionState tracks one keyword's progress through a document.
type sectionState int

const (
	stateSeeking sectionState = iota
	stateAccumulating
	stateDone
)

// Extract collects the numeric payload of every requested keyword.
//
// Each keyword is scanned independently over the whole document; only its
// first section is read. A keyword that never appears yields an empty,
// not-found entry. The first malformed token aborts the call, abandoning
// keywords not yet scanned.
//
// When req.Dimensions is nil the document is sniffed for DIMENS/SPECGRID and
// a DIMENS entry leads the result if one is found.
func Extract(doc *Document, req Request) (*Result, error) {
	result := &Result{Source: doc.Path}

	dims := req.Dimensions
	if dims == nil {
		var err error
		if dims, err = SniffDimensions(doc, req.Conventions); err != nil {
			return nil, fmt.Errorf("reading dimensions: %w", err)
		}
	}
	if dims != nil {
		d := *dims
		result.Dimensions = &d
		result.put(dimensionsEntry(&d, doc.Path))
	}

	seen := make(map[string]bool, len(req.Keywords))
	for _, keyword := range req.Keywords {
		if seen[keyword] {
			continue
		}
		seen[keyword] = true

		entry, err := ExtractKeyword(doc, keyword, req.Conventions)
		if err != nil {
			return nil, err
		}

		if req.Strict && entry.Found && !entry.Terminated {
			return nil, fmt.Errorf("%s: %s at line %d: %w", sourceName(doc), keyword, entry.StartLine, ErrUnterminated)
		}

		if err := req.Cast.Apply(entry.Values); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", sourceName(doc), keyword, err)
		}

		result.put(entry)
	}

	return result, nil
}

// ExtractKeyword reads the first section named keyword. Values keep their
// natural kinds; no cast or promotion is applied.
func ExtractKeyword(doc *Document, keyword string, conv Conventions) (*Entry, error) {
	conv = conv.Normalize()
	entry := &Entry{Keyword: keyword, Source: doc.Path, Values: []Value{}}
	state := stateSeeking

	for idx, raw := range doc.Lines {
		if state == stateDone {
			break
		}

		line := stripLine(raw)

		// A repeated marker inside the section is skipped.
		if line == keyword {
			if state == stateSeeking {
				entry.Found = true
				entry.StartLine = idx + 1
				state = stateAccumulating
			}
			continue
		}

		if state != stateAccumulating || conv.isComment(line) {
			continue
		}

		tokens := conv.tokens(line)
		if len(tokens) == 0 {
			continue
		}

		last := len(tokens) - 1
		terminated := tokens[last] == conv.Terminator
		if terminated {
			tokens = tokens[:last]
		}

		for _, tok := range tokens {
			v, err := ParseLiteral(tok)
			if err != nil {
				return nil, &LiteralError{Source: doc.Path, Line: idx + 1, Keyword: keyword, Token: tok, Err: err}
			}
			entry.Values = append(entry.Values, v)
		}

		if terminated {
			entry.Terminated = true
			entry.EndLine = idx + 1
			state = stateDone
		}
	}

	return entry, nil
}

// ExtractFile reads path once and extracts req from it.
func ExtractFile(ctx context.Context, path string, req Request) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	doc, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("read grdecl file", "file", path, "lines", len(doc.Lines))

	result, err := Extract(doc, req)
	if err != nil {
		return nil, err
	}

	for _, e := range result.Entries {
		logger.Debug("section extracted",
			"file", path,
			"keyword", e.Keyword,
			"found", e.Found,
			"terminated", e.Terminated,
			"values", len(e.Values))
	}

	return result, nil
}

// ExtractFiles runs ExtractFile over each path in order and stops at the
// first error.
func ExtractFiles(ctx context.Context, paths []string, req Request) ([]*Result, error) {
	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		result, err := ExtractFile(ctx, path, req)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// SniffFile reads the grid dimensions of path.
func SniffFile(ctx context.Context, path string, conv Conventions) (*Dimensions, error) {
	doc, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	dims, err := SniffDimensions(doc, conv)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("sniffed dimensions", "file", path, "found", dims != nil)
	return dims, nil
}

func sourceName(doc *Document) string {
	if doc.Path == "" {
		return "<input>"
	}
	return doc.Path
}
