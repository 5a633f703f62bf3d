package parser

import "fmt"

// SniffDimensions reads the grid dimensions from the first DIMENS or
// SPECGRID section. It returns nil when the document declares none.
//
// Only the first non-comment line after the marker is read, and only its
// first three tokens. A bare terminator line anywhere before that line ends
// the scan with no result, even when it precedes the marker. That quirk is
// kept for compatibility with files exported by existing tooling; do not
// build on it.
func SniffDimensions(doc *Document, conv Conventions) (*Dimensions, error) {
	conv = conv.Normalize()
	start := -1
	marker := ""

	for idx, raw := range doc.Lines {
		line := stripLine(raw)

		if isMarker(line, KeywordSpecGrid, KeywordDimens) {
			start = idx
			marker = line
		}

		if line == conv.Terminator {
			return nil, nil
		}

		if start < 0 || idx <= start || conv.isComment(line) {
			continue
		}

		tokens := conv.tokens(line)
		if len(tokens) == 0 {
			return nil, nil
		}

		litErr := func(token string, err error) error {
			return &LiteralError{Source: doc.Path, Line: idx + 1, Keyword: marker, Token: token, Err: err}
		}

		if len(tokens) < 3 {
			return nil, litErr(line, fmt.Errorf("%w: want 3 dimensions, got %d tokens", ErrMalformedLiteral, len(tokens)))
		}

		var dims [3]int
		for i, tok := range tokens[:3] {
			v, err := ParseLiteral(tok)
			if err != nil {
				return nil, litErr(tok, err)
			}
			if !v.IsInt() {
				return nil, litErr(tok, fmt.Errorf("%w %q: dimension must be an integer", ErrMalformedLiteral, tok))
			}
			dims[i] = int(v.Int())
		}

		return &Dimensions{NX: dims[0], NY: dims[1], NZ: dims[2]}, nil
	}

	return nil, nil
}
