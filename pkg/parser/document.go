package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	readBufferSize = 64 * 1024
	ctxCheckEvery  = 4096
)

// Document is the materialized line sequence of one GRDECL file.
// Scans never modify it.
type Document struct {
	// Path is the file the lines came from, empty for in-memory documents.
	Path string

	// Lines are the raw lines without trailing newlines.
	Lines []string
}

// NewDocument wraps an in-memory line sequence.
func NewDocument(lines ...string) *Document {
	return &Document{Lines: lines}
}

// ParseDocument splits text into lines.
func ParseDocument(text string) *Document {
	if text == "" {
		return &Document{}
	}
	return &Document{Lines: strings.Split(strings.TrimSuffix(text, "\n"), "\n")}
}

// ReadDocument reads every line from r. name is recorded as the document
// path. Lines have no length limit; unwrapped ZCORN or COORD exports can
// put millions of values on one line. A trailing "\r" is dropped.
func ReadDocument(ctx context.Context, r io.Reader, name string) (*Document, error) {
	doc := &Document{Path: name}
	reader := bufio.NewReaderSize(r, readBufferSize)

	for {
		if len(doc.Lines)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			doc.Lines = append(doc.Lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}

	return doc, nil
}

// ReadFile reads a GRDECL file into memory. The file is closed before
// ReadFile returns.
func ReadFile(ctx context.Context, path string) (*Document, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return ReadDocument(ctx, f, path)
}
