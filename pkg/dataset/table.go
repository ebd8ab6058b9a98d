package dataset

import (
	"github.com/samber/lo"

	"github.com/matzehuels/semichord/pkg/errors"
)

// Table is validated chart input: the records, the ordered attributes
// plotted as arcs and the field used as each record's key label.
type Table struct {
	Records    []Record
	Attributes []string
	Key        string
}

// NewTable validates records and resolves attributes and key.
//
// When attributes is nil they are taken from the first record's field
// order. When key is empty the first attribute becomes the key and is
// removed from the attribute list. The returned table owns copies of the
// slices it was given.
func NewTable(records []Record, attributes []string, key string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidData, "no data to plot")
	}

	var attrs []string
	if attributes == nil {
		attrs = records[0].Keys()
	} else {
		attrs = append([]string(nil), attributes...)
	}

	if key == "" && len(attrs) > 0 {
		key, attrs = attrs[0], attrs[1:]
	}
	if key == "" {
		return nil, errors.New(errors.ErrCodeInvalidKey, "invalid data key")
	}
	if err := errors.ValidateFieldName(key); err != nil {
		return nil, err
	}

	if len(attrs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidAttributes, "no data-attributes found")
	}
	for _, a := range attrs {
		if err := errors.ValidateFieldName(a); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidAttributes, err, "attribute %q", a)
		}
	}

	return &Table{
		Records:    lo.Map(records, func(r Record, _ int) Record { return r.Clone() }),
		Attributes: attrs,
		Key:        key,
	}, nil
}

// KeyOf returns the display label of record i.
func (t *Table) KeyOf(i int) string {
	v, _ := t.Records[i].Get(t.Key)
	return v.String()
}

// ValueOf returns record i's value for attribute. Missing fields are absent.
func (t *Table) ValueOf(i int, attribute string) Value {
	v, _ := t.Records[i].Get(attribute)
	return v
}

// Keys returns every record's key label in record order.
func (t *Table) Keys() []string {
	return lo.Times(len(t.Records), t.KeyOf)
}
