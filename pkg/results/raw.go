package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResult marks result text that is not a JSON object or null.
var ErrMalformedResult = errors.New("results: malformed result")

// Pair is one key/value of an engine response, in response order. Value is
// nil, bool, string, json.Number, or json.RawMessage for objects and arrays.
type Pair struct {
	Key   string
	Value any
}

// Raw is a flat engine result object with its key order preserved.
type Raw struct {
	Pairs []Pair
}

// ParseRaw decodes data as a JSON object. A literal null yields a nil Raw and
// no error.
func ParseRaw(data []byte) (*Raw, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	raw := &Raw{}
	if err := raw.UnmarshalJSON(trimmed); err != nil {
		return nil, err
	}
	return raw, nil
}

// Len reports the number of pairs.
func (r *Raw) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Pairs)
}

// Get returns the first value whose key matches key exactly.
func (r *Raw) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	for _, pair := range r.Pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return nil, false
}

// Add appends a pair. Values are normalised the same way decoding does.
func (r *Raw) Add(key string, value any) error {
	normalized, err := normalize(value)
	if err != nil {
		return fmt.Errorf("results: add %q: %w", key, err)
	}
	r.Pairs = append(r.Pairs, Pair{Key: key, Value: normalized})
	return nil
}

// MarshalJSON writes the object in pair order. A nil Raw marshals to null.
func (r *Raw) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range r.Pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, fmt.Errorf("results: marshal key %q: %w", pair.Key, err)
		}
		value, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("results: marshal %q: %w", pair.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into ordered pairs. A key repeated
// exactly keeps its first position and takes the last value.
func (r *Raw) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: expected object", ErrMalformedResult)
	}

	pairs := make([]Pair, 0, 16)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResult, err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: expected key", ErrMalformedResult)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrMalformedResult, key, err)
		}
		decoded, err := decodeValue(value)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrMalformedResult, key, err)
		}
		if at, ok := index[key]; ok {
			pairs[at].Value = decoded
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, Pair{Key: key, Value: decoded})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrMalformedResult)
	}
	r.Pairs = pairs
	return nil
}

func decodeValue(data json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty value")
	}
	switch trimmed[0] {
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return nil, err
		}
		return json.RawMessage(buf.Bytes()), nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

func normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil, bool, string, json.Number:
		return v, nil
	case json.RawMessage:
		return decodeValue(v)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return decodeValue(data)
}

func isComposite(value any) bool {
	_, ok := value.(json.RawMessage)
	return ok
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return v
	case json.Number:
		return v.String()
	case json.RawMessage:
		return string(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
