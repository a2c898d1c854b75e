package typeddata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Entry is a single message member.
type Entry struct {
	Name  string
	Value any
}

// Message keeps its members in schema order so that the serialized envelope is stable
// across implementations. Values are treated as immutable once set.
type Message []Entry

// Get returns the value of the named member.
func (m Message) Get(name string) (any, bool) {
	for _, e := range m {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the named member or appends it.
func (m *Message) Set(name string, value any) {
	for i, e := range *m {
		if e.Name == name {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Entry{Name: name, Value: value})
}

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Member order is preserved and numbers are
// kept as json.Number.
func (m *Message) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("message must be an object, got %v", tok)
	}
	out := Message{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding %s: %w", name, err)
		}
		out = append(out, Entry{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// typedDataMessage converts the message into the value shapes expected by the EIP-712 encoder:
// integers as *math.HexOrDecimal256 and arrays as []interface{}.
func (m Message) typedDataMessage(fields []Field) (apitypes.TypedDataMessage, error) {
	out := make(apitypes.TypedDataMessage, len(fields))
	for _, f := range fields {
		v, ok := m.Get(f.Name)
		if !ok {
			return nil, fmt.Errorf("%w: missing message member %s", ErrInvalidPayload, f.Name)
		}
		enc, err := encodeValue(f.Type, v)
		if err != nil {
			return nil, fmt.Errorf("%w: member %s: %w", ErrInvalidPayload, f.Name, err)
		}
		out[f.Name] = enc
	}
	return out, nil
}

func encodeValue(typ string, v any) (any, error) {
	if elem, ok := strings.CutSuffix(typ, "[]"); ok {
		items, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			enc, err := encodeValue(elem, item)
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil
	}
	if strings.HasPrefix(typ, "uint") || strings.HasPrefix(typ, "int") {
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		return math.NewHexOrDecimal256(n), nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string for %s, got %T", typ, v)
	}
	return s, nil
}

func toSlice(v any) ([]any, error) {
	switch v := v.(type) {
	case []any:
		return v, nil
	case []string:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	case []uint32:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	case []int:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected array, got %T", v)
}

func toInt64(v any) (int64, error) {
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("non integer value %v", v)
		}
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}
