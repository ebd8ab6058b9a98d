package dataset

import (
	"bytes"
	"encoding/json"
)

// Field is one named value within a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is one row of input data. Fields keep the order in which they were
// set, so "the first property" of a record is well defined.
type Record struct {
	fields []Field
}

// NewRecord builds a record from fields in order. Later duplicates
// overwrite earlier ones in place.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// F is shorthand for building a Field from a Go scalar.
//
//	dataset.NewRecord(dataset.F("name", "A"), dataset.F("x", 10))
func F(name string, v any) Field {
	return Field{Name: name, Value: FromAny(v)}
}

// Set assigns name. A new name is appended; an existing one keeps its position.
func (r *Record) Set(name string, v Value) {
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = v
			return
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Get returns the value stored under name.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the field names in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Name
	}
	return keys
}

// Fields returns a copy of the record's fields.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	return Record{fields: r.Fields()}
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
