package session

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxSafeInteger is the largest integer a JSON number (IEEE 754 double)
// represents exactly.
const maxSafeInteger = 1 << 53

// Attributes is the flat attribute map carried in a token. Values are
// strings, bools or numbers. Numbers are stored as float64, which is also how
// they come back out of a verified token.
type Attributes map[string]any

// normalizeAttributes validates attrs and returns a copy with NFC-normalised
// keys and every number converted to float64, so that logically equal inputs
// serialise to identical bytes.
func normalizeAttributes(attrs Attributes) (Attributes, error) {
	out := make(Attributes, len(attrs))
	for k, v := range attrs {
		key := norm.NFC.String(k)
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidAttribute)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("%w: key %q collides after normalisation", ErrInvalidAttribute, key)
		}

		val, err := normalizeValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrInvalidAttribute, key, err)
		}
		out[key] = val
	}
	return out, nil
}

func normalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case string, bool:
		return val, nil
	case nil:
		return nil, fmt.Errorf("nil value")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n > maxSafeInteger || n < -maxSafeInteger {
			return nil, fmt.Errorf("integer %d out of range", n)
		}
		return float64(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > maxSafeInteger {
			return nil, fmt.Errorf("integer %d out of range", n)
		}
		return float64(n), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("non-finite number %v", f)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// clone returns a shallow copy. Values are immutable scalars.
func (a Attributes) clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
