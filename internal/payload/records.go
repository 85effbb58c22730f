package payload

import (
	"fmt"
	"strings"

	"ironrod/dash/internal/domain"

	"github.com/PaesslerAG/jsonpath"
)

// Records returns the record array of a tabular payload. When root is set
// it is evaluated as a JSONPath expression (e.g. "$.rows") against body
// first. Elements that are not objects are kept; selectors simply find no
// fields in them.
func Records(body domain.Value, root string) ([]domain.Value, error) {
	if root = strings.TrimSpace(root); root != "" {
		selected, err := Select(body, root)
		if err != nil {
			return nil, err
		}
		body = selected
	}

	if body.Kind != domain.KindArray {
		return nil, fmt.Errorf("%w: expected an array of records, got %s", domain.ErrParse, kindName(body.Kind))
	}
	return body.Items, nil
}

// Select evaluates a JSONPath expression against body.
func Select(body domain.Value, path string) (domain.Value, error) {
	out, err := jsonpath.Get(path, body.Interface())
	if err != nil {
		return domain.Value{}, fmt.Errorf("%w: root %q: %v", domain.ErrParse, path, err)
	}
	return FromInterface(out), nil
}

func kindName(k domain.Kind) string {
	switch k {
	case domain.KindNull:
		return "null"
	case domain.KindBool:
		return "boolean"
	case domain.KindNumber:
		return "number"
	case domain.KindString:
		return "string"
	case domain.KindArray:
		return "array"
	default:
		return "object"
	}
}
