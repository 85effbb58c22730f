package domain

import (
	"strconv"
	"strings"
)

// Kind enumerates the JSON value types a payload can carry.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a decoded JSON value that keeps object keys in document order.
// The zero Value is JSON null.
type Value struct {
	Kind   Kind
	Bool   bool
	Num    float64
	Str    string
	Items  []Value
	Fields []Field
}

// Field is a single key/value pair of an object Value.
type Field struct {
	Name  string
	Value Value
}

// Null reports whether v is JSON null (including a missing value).
func (v Value) Null() bool { return v.Kind == KindNull }

// Get returns the value stored under name when v is an object. Duplicate
// keys resolve to the last occurrence, matching JSON.parse.
func (v Value) Get(name string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for i := len(v.Fields) - 1; i >= 0; i-- {
		if v.Fields[i].Name == name {
			return v.Fields[i].Value, true
		}
	}
	return Value{}, false
}

// Number returns v as a float64. Numbers and strings holding a decimal
// number are numeric; everything else, including null, is not.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Scalar returns the value as a string or float64 for use as a chart
// x-coordinate, without coercing between the two. Non-scalar values yield nil.
func (v Value) Scalar() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	default:
		return nil
	}
}

// String renders scalars the way a table cell would show them.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	case KindArray:
		return "[…]"
	default:
		return "{…}"
	}
}

// Interface converts v to the generic encoding/json representation
// (map[string]any, []any, float64, string, bool, nil).
func (v Value) Interface() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num
	case KindString:
		return v.Str
	case KindArray:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Name] = f.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// Number builds a numeric Value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// String builds a string Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Object builds an object Value from fields in the given order.
func Object(fields ...Field) Value { return Value{Kind: KindObject, Fields: fields} }

// Array builds an array Value.
func Array(items ...Value) Value { return Value{Kind: KindArray, Items: items} }
