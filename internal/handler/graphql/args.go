package graphql

import (
	"github.com/datavista/hris-backend-go/internal/pkg/optional"
	"github.com/shopspring/decimal"
)

// Arguments arrive already coerced by graphql-go: Int as int, Float as
// float64, lists as []interface{} and input objects as maps. A key that is
// present with a nil value was sent as an explicit null.

type arguments map[string]interface{}

func (a arguments) id(name string) int64 {
	v, _ := a[name].(int)
	return int64(v)
}

func (a arguments) str(name string) string {
	v, _ := a[name].(string)
	return v
}

func (a arguments) strPtr(name string) *string {
	v, ok := a[name].(string)
	if !ok {
		return nil
	}
	return &v
}

func (a arguments) intPtr(name string) *int {
	v, ok := a[name].(int)
	if !ok {
		return nil
	}
	return &v
}

func (a arguments) int64Ptr(name string) *int64 {
	v, ok := a[name].(int)
	if !ok {
		return nil
	}
	out := int64(v)
	return &out
}

func (a arguments) boolPtr(name string) *bool {
	v, ok := a[name].(bool)
	if !ok {
		return nil
	}
	return &v
}

func (a arguments) decimalPtr(name string) *decimal.Decimal {
	f, ok := toFloat(a[name])
	if !ok {
		return nil
	}
	d := decimal.NewFromFloat(f)
	return &d
}

func (a arguments) strList(name string) []string {
	raw, ok := a[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (a arguments) object(name string) arguments {
	m, ok := a[name].(map[string]interface{})
	if !ok {
		return nil
	}
	return arguments(m)
}

// Presence-aware accessors for partial updates.

// optionalOf maps an absent key to unset. graphql-go drops null arguments
// before resolvers run, so a null never reaches here; nullable fields are
// cleared through the clear list instead.
func optionalOf[T any](a arguments, name string, convert func(interface{}) (T, bool)) optional.Value[T] {
	raw, present := a[name]
	if !present {
		return optional.Value[T]{}
	}
	v, ok := convert(raw)
	if !ok {
		return optional.Value[T]{}
	}
	return optional.Of(v)
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v interface{}) (int, bool) {
	i, ok := v.(int)
	return i, ok
}

func asBool(v interface{}) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asDecimal(v interface{}) (decimal.Decimal, bool) {
	f, ok := toFloat(v)
	if !ok {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}

func asStrings(v interface{}) ([]string, bool) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
