package parser

import (
	"errors"
	"math"
	"testing"
)

func TestParseLiteral_Valid(t *testing.T) {
	tests := []struct {
		token string
		want  Value
	}{
		{"0", IntValue(0)},
		{"00", IntValue(0)},
		{"42", IntValue(42)},
		{"-7", IntValue(-7)},
		{"+7", IntValue(7)},
		{"1_000", IntValue(1000)},
		{"0x1F", IntValue(31)},
		{"-0x10", IntValue(-16)},
		{"0o17", IntValue(15)},
		{"0b101", IntValue(5)},
		{"1.0", FloatValue(1.0)},
		{"1.", FloatValue(1.0)},
		{".5", FloatValue(0.5)},
		{"-2.5", FloatValue(-2.5)},
		{"01.5", FloatValue(1.5)},
		{"1e3", FloatValue(1000)},
		{"2.5E-3", FloatValue(0.0025)},
		{"1_0.2_5", FloatValue(10.25)},
		{"0.3", FloatValue(0.3)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseLiteral(tt.token)
			if err != nil {
				t.Fatalf("ParseLiteral(%q) error = %v", tt.token, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseLiteral(%q) = %v (%s), want %v (%s)", tt.token, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestParseLiteral_Malformed(t *testing.T) {
	tokens := []string{
		"",
		"abc",
		"3*0.25",
		"1/",
		"/",
		"007",
		"1__0",
		"_1",
		"1_",
		"nan",
		"inf",
		"1e",
		"e5",
		".",
		"1.2.3",
		"0x",
		"0b2",
		"1,5",
		"--",
		"9223372036854775808",
	}

	for _, tok := range tokens {
		t.Run(tok, func(t *testing.T) {
			_, err := ParseLiteral(tok)
			if err == nil {
				t.Fatalf("ParseLiteral(%q) expected error", tok)
			}
			if !errors.Is(err, ErrMalformedLiteral) {
				t.Errorf("ParseLiteral(%q) error = %v, want ErrMalformedLiteral", tok, err)
			}
		})
	}
}

func TestParseLiteral_FloatOverflow(t *testing.T) {
	got, err := ParseLiteral("1e999")
	if err != nil {
		t.Fatalf("ParseLiteral() error = %v", err)
	}
	if !math.IsInf(got.Float(), 1) {
		t.Errorf("ParseLiteral(1e999) = %v, want +Inf", got)
	}
}

func TestValue_Conversions(t *testing.T) {
	v := FloatValue(-2.9)
	if v.Int() != -2 {
		t.Errorf("Int() = %d, want -2", v.Int())
	}
	if IntValue(3).Float() != 3.0 {
		t.Errorf("Float() = %v, want 3", IntValue(3).Float())
	}
	if IntValue(3).Equal(FloatValue(3)) {
		t.Error("int and float values should not be equal")
	}
	if FloatValue(0.25).String() != "0.25" {
		t.Errorf("String() = %s", FloatValue(0.25).String())
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{IntValue(12), "12"},
		{FloatValue(1.5), "1.5"},
		{FloatValue(math.Inf(1)), `"+Inf"`},
	}
	for _, tt := range tests {
		got, err := tt.v.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}
		if string(got) != tt.want {
			t.Errorf("MarshalJSON(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestParseCast(t *testing.T) {
	tests := []struct {
		in      string
		want    Cast
		wantErr bool
	}{
		{"", CastNone, false},
		{"none", CastNone, false},
		{"int", CastInt, false},
		{"INT64", CastInt, false},
		{"float", CastFloat, false},
		{"float64", CastFloat, false},
		{"complex", CastNone, true},
	}
	for _, tt := range tests {
		got, err := ParseCast(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCast(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCast(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCast_Apply(t *testing.T) {
	mixed := func() []Value { return []Value{IntValue(1), FloatValue(2.7), IntValue(-3)} }

	values := mixed()
	if err := CastNone.Apply(values); err != nil {
		t.Fatal(err)
	}
	for _, v := range values {
		if v.IsInt() {
			t.Errorf("CastNone should promote mixed sequence to float, got %v", values)
			break
		}
	}

	ints := []Value{IntValue(1), IntValue(2)}
	if err := CastNone.Apply(ints); err != nil {
		t.Fatal(err)
	}
	if !ints[0].IsInt() || !ints[1].IsInt() {
		t.Errorf("CastNone should keep pure integer sequence, got %v", ints)
	}

	values = mixed()
	if err := CastInt.Apply(values); err != nil {
		t.Fatal(err)
	}
	want := []int64{1, 2, -3}
	for i, v := range values {
		if !v.IsInt() || v.Int() != want[i] {
			t.Errorf("CastInt[%d] = %v, want %d", i, v, want[i])
		}
	}

	values = mixed()
	if err := CastFloat.Apply(values); err != nil {
		t.Fatal(err)
	}
	for _, v := range values {
		if v.IsInt() {
			t.Errorf("CastFloat left integer in %v", values)
		}
	}

	if err := CastInt.Apply([]Value{FloatValue(math.Inf(1))}); err == nil {
		t.Error("CastInt of +Inf expected error")
	}
}

func TestValue_StringKeepsFloatKind(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{FloatValue(3), "3.0"},
		{FloatValue(-0.5), "-0.5"},
		{FloatValue(1e21), "1e+21"},
		{FloatValue(math.Inf(-1)), "-Inf"},
		{IntValue(3), "3"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	for _, want := range []Value{IntValue(-4), FloatValue(3), FloatValue(0.125), FloatValue(math.Inf(1))} {
		data, err := want.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		var got Value
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%s) error = %v", data, err)
		}
		if !got.Equal(want) {
			t.Errorf("UnmarshalJSON(%s) = %v (%s), want %v (%s)", data, got, got.Kind(), want, want.Kind())
		}
	}

	var v Value
	if err := v.UnmarshalJSON([]byte(`"abc"`)); err == nil {
		t.Error("UnmarshalJSON of non-numeric string expected error")
	}
}
