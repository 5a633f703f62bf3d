// Package parser provides keyword scanning and numeric extraction for
// Eclipse/GRDECL text files.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Well-known grid-dimension markers.
const (
	KeywordDimens   = "DIMENS"
	KeywordSpecGrid = "SPECGRID"
)

// Default textual conventions of the GRDECL format.
const (
	DefaultComments   = "--"
	DefaultDelimiter  = " "
	DefaultTerminator = "/"
)

// Kind is the numeric representation of a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
)

func (k Kind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// Value is a single numeric token, either an integer or a float.
type Value struct {
	kind Kind
	i    int64
	f    float64
}

// IntValue returns an integer Value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// FloatValue returns a floating-point Value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Kind reports how the value is represented.
func (v Value) Kind() Kind { return v.kind }

// IsInt reports whether the value holds an integer.
func (v Value) IsInt() bool { return v.kind == KindInt }

// Int returns the value as an integer, truncating floats toward zero.
func (v Value) Int() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// Float returns the value as a float64.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Equal reports whether two values have the same kind and number.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindInt {
		return v.i == o.i
	}
	return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
}

// String formats integers plainly and floats so they always read back as
// floats ("3.0", not "3").
func (v Value) String() string {
	if v.kind == KindInt {
		return strconv.FormatInt(v.i, 10)
	}
	s := strconv.FormatFloat(v.f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// MarshalJSON encodes the value as a bare JSON number. Infinities have no
// JSON number form and are written as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindFloat && (math.IsInf(v.f, 0) || math.IsNaN(v.f)) {
		return []byte(strconv.Quote(v.String())), nil
	}
	return []byte(v.String()), nil
}

// UnmarshalJSON accepts the encodings produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	text := string(data)
	if unquoted, err := strconv.Unquote(text); err == nil {
		f, err := strconv.ParseFloat(unquoted, 64)
		if err != nil {
			return fmt.Errorf("%w %s", ErrMalformedLiteral, text)
		}
		*v = FloatValue(f)
		return nil
	}
	parsed, err := ParseLiteral(text)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the value as a YAML scalar.
func (v Value) MarshalYAML() (interface{}, error) {
	if v.kind == KindInt {
		return v.i, nil
	}
	return v.f, nil
}

// Dimensions is the (nx, ny, nz) grid size declared by DIMENS or SPECGRID.
type Dimensions struct {
	NX int `json:"nx" yaml:"nx"`
	NY int `json:"ny" yaml:"ny"`
	NZ int `json:"nz" yaml:"nz"`
}

// Cells returns nx*ny*nz.
func (d Dimensions) Cells() int {
	return d.NX * d.NY * d.NZ
}

// Values returns the triple as integer values, in declaration order.
func (d Dimensions) Values() []Value {
	return []Value{IntValue(int64(d.NX)), IntValue(int64(d.NY)), IntValue(int64(d.NZ))}
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%d x %d x %d", d.NX, d.NY, d.NZ)
}

// Conventions are the textual markers used to interpret a file.
type Conventions struct {
	// Comments is the comment-line prefix. Empty disables comment detection.
	Comments string `json:"comments" yaml:"comments"`

	// Delimiter separates tokens on a data line. Empty splits on any
	// whitespace run.
	Delimiter string `json:"delimiter" yaml:"delimiter"`

	// Terminator is the token that ends a section. Empty means
	// DefaultTerminator.
	Terminator string `json:"terminator" yaml:"terminator"`
}

// Normalize returns c with an empty Terminator replaced by
// DefaultTerminator. No token is ever empty, so an empty terminator would
// never end a section.
func (c Conventions) Normalize() Conventions {
	if c.Terminator == "" {
		c.Terminator = DefaultTerminator
	}
	return c
}

// DefaultConventions returns the standard GRDECL conventions.
func DefaultConventions() Conventions {
	return Conventions{
		Comments:   DefaultComments,
		Delimiter:  DefaultDelimiter,
		Terminator: DefaultTerminator,
	}
}

// Request describes one extraction call.
type Request struct {
	Conventions

	// Keywords are the section names to extract, in output order.
	Keywords []string

	// Cast converts every extracted sequence to one numeric kind.
	Cast Cast

	// Dimensions are caller-supplied grid dimensions. When nil the document
	// is sniffed for a DIMENS or SPECGRID section.
	Dimensions *Dimensions

	// Strict turns a section that reaches end of file without a terminator
	// into an ErrUnterminated error.
	Strict bool
}

// NewRequest returns a Request with the default conventions.
func NewRequest(keywords ...string) Request {
	return Request{
		Conventions: DefaultConventions(),
		Keywords:    keywords,
	}
}

// Entry is the extracted data of one keyword.
type Entry struct {
	Keyword string  `json:"keyword" yaml:"keyword"`
	Values  []Value `json:"values" yaml:"values"`

	// Found is false when the keyword never appeared.
	Found bool `json:"found" yaml:"found"`

	// Terminated is false when the section ran to end of file.
	Terminated bool `json:"terminated" yaml:"terminated"`

	// StartLine and EndLine are 1-based line numbers of the marker and
	// terminator lines; zero when absent.
	StartLine int `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	EndLine   int `json:"end_line,omitempty" yaml:"end_line,omitempty"`

	// Source is the file the entry was read from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Len returns the number of extracted values.
func (e *Entry) Len() int { return len(e.Values) }

// Floats returns the values as float64s.
func (e *Entry) Floats() []float64 {
	out := make([]float64, len(e.Values))
	for i, v := range e.Values {
		out[i] = v.Float()
	}
	return out
}

// Ints returns the values as int64s, truncating floats.
func (e *Entry) Ints() []int64 {
	out := make([]int64, len(e.Values))
	for i, v := range e.Values {
		out[i] = v.Int()
	}
	return out
}

// Result maps keywords to extracted sequences. Entries keep insertion order:
// a DIMENS entry first when dimensions are known, then the requested
// keywords in request order.
type Result struct {
	Source     string      `json:"source,omitempty" yaml:"source,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Entries    []*Entry    `json:"entries" yaml:"entries"`
}

// Entry returns the entry for keyword, or nil.
func (r *Result) Entry(keyword string) *Entry {
	for _, e := range r.Entries {
		if e.Keyword == keyword {
			return e
		}
	}
	return nil
}

// Get returns the values extracted for keyword. The boolean is false when
// the keyword was not part of the result.
func (r *Result) Get(keyword string) ([]Value, bool) {
	e := r.Entry(keyword)
	if e == nil {
		return nil, false
	}
	return e.Values, true
}

// Keywords returns the entry keywords in order.
func (r *Result) Keywords() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Keyword
	}
	return out
}

// Missing returns the keywords that were requested but never found.
func (r *Result) Missing() []string {
	var out []string
	for _, e := range r.Entries {
		if !e.Found {
			out = append(out, e.Keyword)
		}
	}
	return out
}

// put appends e, or replaces an existing entry with the same keyword in
// place.
func (r *Result) put(e *Entry) {
	for i, existing := range r.Entries {
		if existing.Keyword == e.Keyword {
			r.Entries[i] = e
			return
		}
	}
	r.Entries = append(r.Entries, e)
}

// dimensionsEntry synthesizes the DIMENS entry from known dimensions.
func dimensionsEntry(d *Dimensions, source string) *Entry {
	return &Entry{
		Keyword:    KeywordDimens,
		Values:     d.Values(),
		Found:      true,
		Terminated: true,
		Source:     source,
	}
}
