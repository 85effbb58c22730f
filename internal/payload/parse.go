// Package payload turns gateway response bodies into domain.Value trees.
// Object keys keep their document order, which the scorecard view relies on.
package payload

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"ironrod/dash/internal/domain"

	jsoniter "github.com/json-iterator/go"
)

// Parse decodes a JSON document. Objects list each key once, in the order
// it first appears, holding its last value. Invalid JSON yields an error
// wrapping domain.ErrParse.
func Parse(data []byte) (domain.Value, error) {
	if !jsoniter.Valid(data) {
		return domain.Value{}, fmt.Errorf("%w: body is not valid JSON", domain.ErrParse)
	}

	iter := jsoniter.ParseBytes(jsoniter.ConfigDefault, data)
	v := readValue(iter)
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return domain.Value{}, fmt.Errorf("%w: %v", domain.ErrParse, iter.Error)
	}
	return v, nil
}

func readValue(iter *jsoniter.Iterator) domain.Value {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return domain.Value{}
	case jsoniter.BoolValue:
		return domain.Value{Kind: domain.KindBool, Bool: iter.ReadBool()}
	case jsoniter.NumberValue:
		return domain.Number(iter.ReadFloat64())
	case jsoniter.StringValue:
		return domain.String(iter.ReadString())
	case jsoniter.ArrayValue:
		items := []domain.Value{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readValue(it))
			return ok(it)
		})
		return domain.Value{Kind: domain.KindArray, Items: items}
	case jsoniter.ObjectValue:
		// A repeated key keeps its first position and takes the last value.
		fields := []domain.Field{}
		var index map[string]int
		iter.ReadObjectCB(func(it *jsoniter.Iterator, name string) bool {
			v := readValue(it)
			if i, dup := index[name]; dup {
				fields[i].Value = v
				return ok(it)
			}
			if index == nil {
				index = make(map[string]int)
			}
			index[name] = len(fields)
			fields = append(fields, domain.Field{Name: name, Value: v})
			return ok(it)
		})
		return domain.Value{Kind: domain.KindObject, Fields: fields}
	default:
		iter.ReportError("payload.Parse", "unexpected token")
		return domain.Value{}
	}
}

func ok(iter *jsoniter.Iterator) bool {
	return iter.Error == nil || errors.Is(iter.Error, io.EOF)
}

// FromInterface converts a generic encoding/json value into a domain.Value.
// Map keys have no order, so they are sorted for deterministic output.
func FromInterface(x any) domain.Value {
	switch t := x.(type) {
	case nil:
		return domain.Value{}
	case bool:
		return domain.Value{Kind: domain.KindBool, Bool: t}
	case float64:
		return domain.Number(t)
	case float32:
		return domain.Number(float64(t))
	case int:
		return domain.Number(float64(t))
	case int64:
		return domain.Number(float64(t))
	case string:
		return domain.String(t)
	case []any:
		items := make([]domain.Value, len(t))
		for i, item := range t {
			items[i] = FromInterface(item)
		}
		return domain.Value{Kind: domain.KindArray, Items: items}
	case map[string]any:
		names := make([]string, 0, len(t))
		for name := range t {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]domain.Field, len(names))
		for i, name := range names {
			fields[i] = domain.Field{Name: name, Value: FromInterface(t[name])}
		}
		return domain.Value{Kind: domain.KindObject, Fields: fields}
	default:
		return domain.String(fmt.Sprint(t))
	}
}
