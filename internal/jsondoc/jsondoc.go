// Package jsondoc provides an order-preserving JSON object container.
//
// The migration engine rewrites user-owned files (config.json and preset
// files) that it only partially understands. Fields it does not touch must
// survive a load/save round trip unchanged, which rules out map[string]any:
// Go maps lose key order, and float64 decoding mangles large integers.
//
// Object keeps keys in document order (new keys append at the end, matching
// the insertion-ordered semantics the on-disk format has always assumed) and
// decodes numbers as json.Number so they re-serialize exactly as written.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Object is a JSON object whose keys iterate in document order.
//
// Values are one of: *Object, []any, string, json.Number, bool, or nil.
// Array elements follow the same set.
type Object struct {
	keys   []string
	values map[string]any
}

// New returns an empty Object.
func New() *Object {
	return &Object{values: make(map[string]any)}
}

// Parse decodes a JSON object from data.
// The top-level value must be an object.
func Parse(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("decode: top-level value is not an object")
	}

	obj, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing garbage after the document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode: trailing data after object")
	}
	return obj, nil
}

// ParseFile reads and decodes the JSON object stored at path.
func ParseFile(path string) (*Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode: object key is not a string: %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return arr, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("decode: unexpected delimiter %q", delim)
		}
	}
	// string, json.Number, bool, or nil.
	return tok, nil
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in document order. The returned slice is a copy and
// stays valid while the caller mutates the Object.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// GetObject returns the nested object stored under key, or false if the key
// is absent or holds a non-object value.
func (o *Object) GetObject(key string) (*Object, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	nested, ok := v.(*Object)
	return nested, ok
}

// GetString returns the string stored under key, or false if the key is
// absent or holds a non-string value.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores value under key. Existing keys keep their position; new keys
// append at the end.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Pop removes key and returns its value. Re-inserting a popped key with Set
// appends it at the end, which is how key renames migrate position.
func (o *Object) Pop(key string) (any, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	o.Delete(key)
	return v, true
}
