package parser

import (
	"fmt"
	"math"
	"strings"
)

// Cast selects the numeric kind of an extracted sequence.
type Cast string

const (
	// CastNone keeps the natural representation: integers stay integers
	// unless the sequence also holds floats, in which case every value is
	// promoted to float.
	CastNone  Cast = ""
	CastInt   Cast = "int"
	CastFloat Cast = "float"
)

// ParseCast accepts "", "none", "int", "int64", "float" and "float64".
func ParseCast(s string) (Cast, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CastNone, nil
	case "int", "int64":
		return CastInt, nil
	case "float", "float64":
		return CastFloat, nil
	default:
		return CastNone, fmt.Errorf("unknown cast %q (must be int or float)", s)
	}
}

// Apply converts values in place.
func (c Cast) Apply(values []Value) error {
	switch c {
	case CastNone:
		promote(values)
	case CastInt:
		for i, v := range values {
			if v.kind == KindFloat {
				if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
					return fmt.Errorf("cannot cast %s to int", v)
				}
				values[i] = IntValue(int64(v.f))
			}
		}
	case CastFloat:
		for i, v := range values {
			values[i] = FloatValue(v.Float())
		}
	default:
		return fmt.Errorf("unknown cast %q", string(c))
	}
	return nil
}

// promote turns a mixed int/float sequence into floats.
func promote(values []Value) {
	hasFloat := false
	for _, v := range values {
		if v.kind == KindFloat {
			hasFloat = true
			break
		}
	}
	if !hasFloat {
		return
	}
	for i, v := range values {
		values[i] = FloatValue(v.Float())
	}
}
