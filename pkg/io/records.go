package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/errors"
)

// recordsKey names the record list in TOML and YAML documents.
const recordsKey = "records"

// ImportRecords reads the dataset at path, picking the format from the
// file extension.
func ImportRecords(path string) ([]dataset.Record, error) {
	format, err := errors.DataFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	records, err := ReadRecords(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read %s", path)
	}
	return records, nil
}

// ReadRecords decodes records from r in the given format: "json", "csv",
// "toml" or "yaml".
func ReadRecords(r io.Reader, format string) ([]dataset.Record, error) {
	switch format {
	case "json":
		return ReadJSON(r)
	case "csv":
		return ReadCSV(r)
	case "toml":
		return ReadTOML(r)
	case "yaml", "yml":
		return ReadYAML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported data format %q", format)
}

// ReadJSON decodes a JSON array of objects. Field order follows the
// document. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]dataset.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	var records []dataset.Record
	for dec.More() {
		rec, err := readJSONObject(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return records, nil
}

func readJSONObject(dec *json.Decoder) (dataset.Record, error) {
	var rec dataset.Record
	if err := expectDelim(dec, '{'); err != nil {
		return rec, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return rec, fmt.Errorf("decode: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return rec, fmt.Errorf("unexpected token %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return rec, fmt.Errorf("field %s: %w", name, err)
		}
		rec.Set(name, dataset.FromAny(raw))
	}
	return rec, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// ReadCSV decodes CSV with a header row naming the fields.
func ReadCSV(r io.Reader) ([]dataset.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []dataset.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		var rec dataset.Record
		for i, name := range header {
			rec.Set(name, csvValue(row[i]))
		}
		records = append(records, rec)
	}
}

func csvValue(cell string) dataset.Value {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return dataset.Value{}
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return dataset.Num(f)
	}
	return dataset.Str(cell)
}

// ReadTOML decodes records from a [[records]] array of tables. Field
// order follows the first appearance of each field in the document.
func ReadTOML(r io.Reader) ([]dataset.Record, error) {
	var doc struct {
		Records []map[string]any `toml:"records"`
	}
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var order []string
	for _, k := range md.Keys() {
		if len(k) == 2 && k[0] == recordsKey && !slices.Contains(order, k[1]) {
			order = append(order, k[1])
		}
	}

	records := make([]dataset.Record, 0, len(doc.Records))
	for _, m := range doc.Records {
		var rec dataset.Record
		for _, name := range order {
			if v, ok := m[name]; ok {
				rec.Set(name, dataset.FromAny(v))
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadYAML decodes a sequence of mappings, or a mapping whose "records"
// entry is such a sequence.
func ReadYAML(r io.Reader) ([]dataset.Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}

	seq := &doc
	if seq.Kind == yaml.DocumentNode && len(seq.Content) > 0 {
		seq = seq.Content[0]
	}
	if seq.Kind == yaml.MappingNode {
		seq = mappingValue(seq, recordsKey)
	}
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a sequence of records")
	}

	records := make([]dataset.Record, 0, len(seq.Content))
	for i, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("record %d: expected a mapping, line %d", i, item.Line)
		}
		var rec dataset.Record
		for j := 0; j+1 < len(item.Content); j += 2 {
			var v any
			if err := item.Content[j+1].Decode(&v); err != nil {
				return nil, fmt.Errorf("record %d field %s: %w", i, item.Content[j].Value, err)
			}
			rec.Set(item.Content[j].Value, dataset.FromAny(v))
		}
		records = append(records, rec)
	}
	return records, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// WriteRecords encodes records as an indented JSON array and writes it to
// w. The output can be re-imported with [ReadJSON].
func WriteRecords(records []dataset.Record, w io.Writer) error {
	if records == nil {
		records = []dataset.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// ExportRecords writes records to a JSON file at path.
func ExportRecords(records []dataset.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteRecords(records, f)
}
