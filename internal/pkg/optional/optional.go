// Package optional carries explicit presence for partial updates, so a zero
// value supplied by the caller is distinguishable from a field that was not
// supplied at all.
package optional

// Value is either unset, set to a value, or set to null.
type Value[T any] struct {
	value T
	set   bool
	null  bool
}

// Of returns a Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// Null returns a Value that is present but explicitly empty.
func Null[T any]() Value[T] {
	return Value[T]{set: true, null: true}
}

// FromPtr maps a nil pointer to an unset Value.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Value[T]{}
	}
	return Of(*p)
}

func (v Value[T]) IsSet() bool {
	return v.set
}

func (v Value[T]) IsNull() bool {
	return v.set && v.null
}

// Get returns the held value and whether it is present and non-null.
func (v Value[T]) Get() (T, bool) {
	if !v.set || v.null {
		var zero T
		return zero, false
	}
	return v.value, true
}

// Ptr returns nil for unset or null values.
func (v Value[T]) Ptr() *T {
	if !v.set || v.null {
		return nil
	}
	out := v.value
	return &out
}
