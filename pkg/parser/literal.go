package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const digits = `[0-9](?:_?[0-9])*`

var (
	intPattern = regexp.MustCompile(`^[+-]?(?:` +
		`0[xX](?:_?[0-9a-fA-F])+|` +
		`0[oO](?:_?[0-7])+|` +
		`0[bB](?:_?[01])+|` +
		`0(?:_?0)*|` +
		`[1-9](?:_?[0-9])*)$`)

	floatPattern = regexp.MustCompile(`^[+-]?(?:` +
		`(?:` + digits + `|(?:` + digits + `)?\.` + digits + `|` + digits + `\.)[eE][+-]?` + digits + `|` +
		`(?:` + digits + `)?\.` + digits + `|` +
		digits + `\.)$`)
)

// ParseLiteral parses a single numeric token. Integers accept decimal,
// 0x, 0o and 0b forms; floats accept point and exponent forms. Underscores
// may separate digits. Everything else, including repeat counts such as
// "3*0.25", is ErrMalformedLiteral.
func ParseLiteral(token string) (Value, error) {
	switch {
	case intPattern.MatchString(token):
		i, err := strconv.ParseInt(strings.ReplaceAll(token, "_", ""), 0, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w %q: %w", ErrMalformedLiteral, token, err)
		}
		return IntValue(i), nil
	case floatPattern.MatchString(token):
		f, err := strconv.ParseFloat(strings.ReplaceAll(token, "_", ""), 64)
		// Overflow yields ±Inf, underflow yields 0.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("%w %q: %w", ErrMalformedLiteral, token, err)
		}
		return FloatValue(f), nil
	default:
		return Value{}, fmt.Errorf("%w %q", ErrMalformedLiteral, token)
	}
}
