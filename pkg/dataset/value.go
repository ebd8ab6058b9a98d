package dataset

import (
	"encoding/json"
	"strconv"
)

// Kind tags the payload held by a [Value].
type Kind uint8

const (
	// Absent marks a field that was never set.
	Absent Kind = iota
	// String holds free text, possibly numeric-coercible ("$1,234.50").
	String
	// Number holds a float64.
	Number
)

// Value is a record field value: a string or a number. The zero Value is
// absent.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Str returns a string Value.
func Str(s string) Value { return Value{kind: String, str: s} }

// Num returns a numeric Value.
func Num(n float64) Value { return Value{kind: Number, num: n} }

// Kind reports what v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.kind == Number }

// IsZero reports whether v is absent. It lets encoding/json omit absent
// values under the omitzero option.
func (v Value) IsZero() bool { return v.kind == Absent }

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == Number
}

// Text returns the string payload, or "" for non-string values.
func (v Value) Text() string {
	if v.kind == String {
		return v.str
	}
	return ""
}

// String renders v for display. Numbers use the shortest representation
// that round-trips ("10", "1234.5"). Absent values render as "".
func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case String:
		return v.str
	}
	return ""
}

// MarshalJSON encodes numbers as JSON numbers, strings as strings and
// absent values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Number:
		return json.Marshal(v.num)
	case String:
		return json.Marshal(v.str)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a JSON number, string or null.
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// FromAny converts a decoded scalar (from JSON, TOML or YAML) into a Value.
// Booleans and other scalars are kept as their string form; nil is absent.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case string:
		return Str(t)
	case float64:
		return Num(t)
	case float32:
		return Num(float64(t))
	case int:
		return Num(float64(t))
	case int64:
		return Num(float64(t))
	case int32:
		return Num(float64(t))
	case uint64:
		return Num(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Num(f)
		}
		return Str(t.String())
	case bool:
		return Str(strconv.FormatBool(t))
	}
	return Str(toString(x))
}

func toString(x any) string {
	if s, ok := x.(interface{ String() string }); ok {
		return s.String()
	}
	b, err := json.Marshal(x)
	if err != nil {
		return ""
	}
	return string(b)
}
