package luna

// FromAny converts a dynamically-typed Go value (the shape produced by
// encoding/json, YAML, or msgpack decoding into any) into a Value.
// Slices become tables keyed 1..n in the number domain; string-keyed maps
// become string-keyed tables. Unsupported Go types yield an error value.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Nil()
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case string:
		return String(x)
	case []byte:
		return String(string(x))
	case []any:
		t := NewTable()
		for i, elem := range x {
			t.SetIndex(float64(i+1), FromAny(elem))
		}
		return t
	case map[string]any:
		t := NewTable()
		for k, elem := range x {
			t.SetField(k, FromAny(elem))
		}
		return t
	case map[any]any:
		t := NewTable()
		for k, elem := range x {
			switch kk := k.(type) {
			case string:
				t.SetField(kk, FromAny(elem))
			case float64:
				t.SetIndex(kk, FromAny(elem))
			case int:
				t.SetIndex(float64(kk), FromAny(elem))
			case int64:
				t.SetIndex(float64(kk), FromAny(elem))
			}
		}
		return t
	default:
		return Errorf("cannot convert host value of type %T", v)
	}
}

// ToAny converts a Value into the dynamically-typed shape expected by
// encoding/json, jq queries, and msgpack encoding. Tables whose keys are
// exactly the numbers 1..n become []any; all other tables become
// map[string]any with number keys rendered as text. Error values, which
// have no wire form, convert to nil.
func ToAny(v Value) any {
	switch v.kind {
	case KindNil, KindError:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindTable:
		if arr, ok := tableToSlice(v.t); ok {
			return arr
		}
		m := make(map[string]any, len(v.t))
		for k, elem := range v.t {
			m[k.String()] = ToAny(elem)
		}
		return m
	default:
		return nil
	}
}

// tableToSlice converts t to a slice if its key set is exactly the
// number keys 1..len(t).
func tableToSlice(t map[Key]Value) ([]any, bool) {
	if len(t) == 0 {
		return nil, false
	}
	arr := make([]any, len(t))
	for k, elem := range t {
		if k.Kind() != KindNumber {
			return nil, false
		}
		n := k.Number()
		i := int(n)
		if float64(i) != n || i < 1 || i > len(t) {
			return nil, false
		}
		arr[i-1] = ToAny(elem)
	}
	return arr, true
}
