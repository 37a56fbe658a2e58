package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Row is one decoded data row: column name -> scalar cell value.
// Column order lives in Dataset.Columns, not in the map.
type Row map[string]Value

type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a tagged scalar cell value. Cells carry strings, numbers,
// booleans or nothing at all, so a fixed-type field does not work here.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func EmptyValue() Value {
	return Value{Kind: KindEmpty}
}

func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// MarshalJSON writes the native scalar so rows round-trip through jsonb
// unchanged.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal cell value: %w", err)
	}

	switch val := raw.(type) {
	case nil:
		*v = EmptyValue()
	case bool:
		*v = BoolValue(val)
	case float64:
		*v = NumberValue(val)
	case string:
		*v = StringValue(val)
	default:
		return fmt.Errorf("unsupported cell value of type %T", raw)
	}

	return nil
}
