package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// object holds every member of a decoded JSON object in document order,
// including the ones the package models.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

var errNotObject = errors.New("expected JSON object")

func decodeObject(data []byte) (*object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}
	obj := &object{values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		if _, dup := obj.values[key]; !dup {
			obj.keys = append(obj.keys, key)
		}
		obj.values[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

// take decodes a modelled member. Missing members leave dst untouched; the
// raw value stays in the object so it can be written back verbatim.
func (o *object) take(key string, dst any) error {
	value, ok := o.values[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(value, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// member is a modelled value. set is false when the model holds the zero
// value, in which case the original raw member (null, "" and so on) is kept.
type member struct {
	key   string
	value any
	set   bool
}

// encodeObject writes members in their decoded order. Modelled members that
// carry a value replace the raw text; modelled members that were absent are
// appended in the given order. Strings are not HTML-escaped.
func encodeObject(known []member, obj *object) ([]byte, error) {
	if obj == nil {
		obj = &object{}
	}
	byKey := make(map[string]member, len(known))
	for _, m := range known {
		byKey[m.key] = m
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		encodedKey, err := marshalNoEscape(key)
		if err != nil {
			return err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encoded, err := marshalNoEscape(value)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		buf.Write(encoded)
		return nil
	}
	for _, key := range obj.keys {
		var value any = obj.values[key]
		if m, ok := byKey[key]; ok && m.set {
			value = m.value
		}
		if err := write(key, value); err != nil {
			return nil, err
		}
	}
	for _, m := range known {
		if _, seen := obj.values[m.key]; seen || !m.set {
			continue
		}
		if err := write(m.key, m.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
