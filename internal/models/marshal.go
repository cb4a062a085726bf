package models

import (
	"bytes"
	"encoding/json"
)

// The concrete Value types implement json.Marshaler so that trees embedded
// in response envelopes serialize correctly: objects keep their stored
// member order instead of the map ordering encoding/json would impose.

// MarshalJSON satisfies json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// MarshalJSON satisfies json.Marshaler.
func (b Bool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// MarshalJSON satisfies json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.text == "" {
		return []byte("0"), nil
	}
	return []byte(n.text), nil
}

// MarshalJSON satisfies json.Marshaler.
func (s String) MarshalJSON() ([]byte, error) { return json.Marshal(string(s)) }

// MarshalJSON satisfies json.Marshaler.
func (a Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elt := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := json.Marshal(elt)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON satisfies json.Marshaler.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		data, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
