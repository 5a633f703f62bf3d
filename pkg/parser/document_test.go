package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"PORO\n0.1 /\n", []string{"PORO", "0.1 /"}},
		{"PORO\n0.1 /", []string{"PORO", "0.1 /"}},
		{"\n", []string{""}},
	}
	for _, tt := range tests {
		got := ParseDocument(tt.text)
		if diff := cmp.Diff(tt.want, got.Lines); diff != "" {
			t.Errorf("ParseDocument(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(context.Background(), strings.NewReader("PORO\r\n0.1 /\r\n"), "mem")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Path != "mem" {
		t.Errorf("Path = %q, want mem", doc.Path)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("Lines = %q, want 2 lines", doc.Lines)
	}

	entry, err := ExtractKeyword(doc, "PORO", DefaultConventions())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(floats(0.1), entry.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDocument_LongLine(t *testing.T) {
	const n = 500000
	line := strings.Repeat("0.25 ", n) + "/"
	if len(line) <= 2*1024*1024 {
		t.Fatalf("fixture line is only %d bytes", len(line))
	}

	doc, err := ReadDocument(context.Background(), strings.NewReader("ZCORN\n"+line+"\nPORO\n0.1 /"), "mem")
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if len(doc.Lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(doc.Lines))
	}

	entry, err := ExtractKeyword(doc, "ZCORN", DefaultConventions())
	if err != nil {
		t.Fatal(err)
	}
	if entry.Len() != n || !entry.Terminated {
		t.Errorf("ZCORN: %d values, terminated=%v, want %d terminated", entry.Len(), entry.Terminated, n)
	}
}

func TestReadDocument_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadDocument(ctx, strings.NewReader("PORO\n"), "mem")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ReadDocument() error = %v, want context.Canceled", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PORO.GRDECL")
	if err := os.WriteFile(path, []byte("PORO\n0.1 0.2 /\n"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if doc.Path != path || len(doc.Lines) != 2 {
		t.Errorf("ReadFile() = %+v", doc)
	}
}

func TestReadFile_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "EMPTY.GRDECL")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	dims, err := SniffDimensions(doc, DefaultConventions())
	if err != nil || dims != nil {
		t.Errorf("SniffDimensions(empty) = %v, %v, want nil, nil", dims, err)
	}
}
