package reactive

import "reflect"

// EqualFunc reports whether two values should be treated as the same.
type EqualFunc[T any] func(a, b T) bool

// Equal compares with == when the dynamic types are comparable and falls back
// to reflect.DeepEqual otherwise (slices, maps, funcs, structs holding them).
func Equal[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	at, bt := reflect.TypeOf(av), reflect.TypeOf(bv)
	if at != bt {
		return false
	}
	if at.Comparable() && comparableValue(reflect.ValueOf(av)) {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}

// comparableValue guards against interface fields whose dynamic values are
// not comparable, which would make == panic.
func comparableValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		elem := v.Elem()
		return elem.Type().Comparable() && comparableValue(elem)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !comparableValue(v.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !comparableValue(v.Index(i)) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func equalOrDefault[T any](fn EqualFunc[T]) EqualFunc[T] {
	if fn != nil {
		return fn
	}
	return Equal[T]
}
