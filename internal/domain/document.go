package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is a parsed Helix response body. Values stay raw so callers can
// tell a missing key apart from a zero value.
type Document map[string]json.RawMessage

func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// IsNumber reports whether key holds a JSON number.
func (d Document) IsNumber(key string) bool {
	raw := bytes.TrimSpace(d[key])
	if len(raw) == 0 {
		return false
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	var f float64
	return json.Unmarshal(raw, &f) == nil
}

func (d Document) Int(key string) (int, bool) {
	if !d.IsNumber(key) {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(d[key], &n); err != nil {
		return 0, false
	}
	return n, true
}

func (d Document) String(key string) (string, bool) {
	raw, ok := d[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Records decodes key as an array of objects. ok is false when key is absent
// or does not hold an array.
func (d Document) Records(key string) (records []Document, ok bool) {
	raw, found := d[key]
	if !found {
		return nil, false
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	if records == nil {
		return nil, false
	}
	return records, true
}

// Decode re-encodes the document into out.
func (d Document) Decode(out any) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("document: encode: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("document: decode: %w", err)
	}
	return nil
}

// DecodeRecords decodes every record into a new T.
func DecodeRecords[T any](records []Document) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := rec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
