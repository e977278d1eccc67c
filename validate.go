package shapecheck

import (
	"fmt"
	"reflect"
	"sort"
)

// The engine is an explicit Result-returning recursion: every call either
// produces a conforming canonical value or an *Error built at the exact point
// of mismatch. Failures are terminal for the attempted schema; there is no
// retry and no silent coercion. Message templates, detail labels, and child
// ordering are part of the rendering contract and must not drift.

func validateValue(v any, s Schema, depth, maxDepth int) (any, *Error) {
	if maxDepth > 0 && depth > maxDepth {
		return nil, newError("maximum nesting depth exceeded", v, s)
	}

	switch sc := s.(type) {
	case *Record:
		return validateRecord(v, sc, depth, maxDepth)
	case *KeyedObject:
		return validateKeyed(v, sc, depth, maxDepth)
	case *Literal:
		want := Normalize(sc.Value)
		if !reflect.DeepEqual(v, want) {
			return nil, newError("did not match literal "+formatValue(sc.Value), v, s)
		}
		return want, nil
	case *Union:
		var children []Child
		for _, variant := range sc.Variants {
			res, err := validateValue(v, variant, depth, maxDepth)
			if err == nil {
				return res, nil
			}
			children = append(children, Child{
				Label: fmt.Sprintf("option '%s' did not match", variant),
				Err:   err,
			})
		}
		e := newError("union did not match schema", v, s)
		e.Children = children
		return nil, e
	case *Mapping:
		return validateMapping(v, sc, depth, maxDepth)
	case *Tuple:
		return validateTuple(v, sc, depth, maxDepth)
	case *Sequence:
		return validateSequence(v, sc, depth, maxDepth)
	case *Primitive:
		return validatePrimitive(v, sc)
	case *Lazy:
		return validateValue(v, sc.Resolve(), depth, maxDepth)
	case *Trusted:
		return v, nil
	default:
		// Unsupported or nil schema: a schema-definition bug, reported
		// through the ordinary error channel so callers have one path.
		return nil, newError("[Internal Error] unknown type", v, s)
	}
}

func validateRecord(v any, sc *Record, depth, maxDepth int) (any, *Error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, newError("expected an object", v, sc)
	}

	out := make(map[string]any, len(sc.Fields))
	declared := make(map[string]struct{}, len(sc.Fields))

	var missing List
	var children []Child
	for _, f := range sc.Fields {
		declared[f.Name] = struct{}{}
		fv, present := obj[f.Name]
		if !present {
			switch {
			case f.DefaultFunc != nil:
				out[f.Name] = f.DefaultFunc()
			case f.HasDefault:
				out[f.Name] = f.DefaultValue
			default:
				missing = append(missing, Line(f.Name))
			}
			continue
		}
		res, err := validateValue(fv, f.Schema, depth+1, maxDepth)
		if err != nil {
			children = append(children, Child{
				Label: fmt.Sprintf("field '%s' did not match schema", f.Name),
				Err:   err,
			})
			continue
		}
		out[f.Name] = res
	}

	extraneous := extraneousKeys(obj, declared)

	if len(missing) > 0 || len(extraneous) > 0 || len(children) > 0 {
		e := newError("dataclass did not match schema", v, sc)
		if len(missing) > 0 {
			e.Details = append(e.Details, Detail{Label: "missing fields", Value: missing})
		}
		if len(extraneous) > 0 {
			e.Details = append(e.Details, Detail{Label: "extraneous fields", Value: extraneous})
		}
		e.Children = children
		return nil, e
	}
	return out, nil
}

func validateKeyed(v any, sc *KeyedObject, depth, maxDepth int) (any, *Error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, newError("expected an object", v, sc)
	}

	out := make(map[string]any, len(obj))
	declared := make(map[string]struct{}, len(sc.Required)+len(sc.Optional))

	var missing List
	var children []Child
	check := func(k string, required bool) {
		declared[k] = struct{}{}
		fv, present := obj[k]
		if !present {
			if required {
				missing = append(missing, Line(k))
			}
			return
		}
		res, err := validateValue(fv, sc.Fields[k], depth+1, maxDepth)
		if err != nil {
			children = append(children, Child{
				Label: fmt.Sprintf("field '%s' did not match schema", k),
				Err:   err,
			})
			return
		}
		out[k] = res
	}
	for _, k := range sc.Required {
		check(k, true)
	}
	for _, k := range sc.Optional {
		check(k, false)
	}

	extraneous := extraneousKeys(obj, declared)

	if len(missing) > 0 || len(extraneous) > 0 || len(children) > 0 {
		e := newError("dictionary did not match schema", v, sc)
		if len(missing) > 0 {
			e.Details = append(e.Details, Detail{Label: "missing fields", Value: missing})
		}
		if len(extraneous) > 0 {
			e.Details = append(e.Details, Detail{Label: "extraneous fields", Value: extraneous})
		}
		e.Children = children
		return nil, e
	}
	return out, nil
}

func validateMapping(v any, sc *Mapping, depth, maxDepth int) (any, *Error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, newError("expected a dict", v, sc)
	}

	out := make(map[string]any, len(obj))
	var children []Child
	for _, k := range sortedKeys(obj) {
		// A key failure and a value failure for the same entry are both
		// recorded; entries with either failure are dropped from the result.
		keyRes, keyErr := validateValue(k, sc.Key, depth+1, maxDepth)
		if keyErr != nil {
			children = append(children, Child{Label: "key " + k, Err: keyErr})
		}
		valRes, valErr := validateValue(obj[k], sc.Value, depth+1, maxDepth)
		if valErr != nil {
			children = append(children, Child{Label: "value for key " + k, Err: valErr})
		}
		if keyErr != nil || valErr != nil {
			continue
		}
		outKey := k
		if ks, ok := keyRes.(string); ok {
			outKey = ks
		}
		out[outKey] = valRes
	}

	if len(children) > 0 {
		e := newError("list items did not match schema", v, sc)
		e.Children = children
		return nil, e
	}
	return out, nil
}

func validateTuple(v any, sc *Tuple, depth, maxDepth int) (any, *Error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, newError("expected a tuple", v, sc)
	}

	n, m := len(sc.Items), len(arr)
	out := make([]any, 0, n)
	var children []Child
	for i := 0; i < n && i < m; i++ {
		res, err := validateValue(arr[i], sc.Items[i], depth+1, maxDepth)
		if err != nil {
			children = append(children, Child{Label: fmt.Sprintf("item %d", i+1), Err: err})
			continue
		}
		out = append(out, res)
	}

	if m != n || len(children) > 0 {
		e := newError("tuple items did not match schema", v, sc)
		e.Details = append(e.Details, Detail{
			Label: "length mismatch",
			Value: Line(fmt.Sprintf("expected %d but got %d", n, m)),
		})
		e.Children = children
		return nil, e
	}
	return out, nil
}

func validateSequence(v any, sc *Sequence, depth, maxDepth int) (any, *Error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, newError("expected an iterable", v, sc)
	}

	out := make([]any, 0, len(arr))
	var children []Child
	for i, item := range arr {
		res, err := validateValue(item, sc.Item, depth+1, maxDepth)
		if err != nil {
			children = append(children, Child{Label: fmt.Sprintf("item %d", i+1), Err: err})
			continue
		}
		out = append(out, res)
	}

	if len(children) > 0 {
		e := newError("list items did not match schema", v, sc)
		e.Children = children
		return nil, e
	}
	return out, nil
}

func validatePrimitive(v any, sc *Primitive) (any, *Error) {
	switch sc.Kind {
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, newError("expected a boolean", v, sc)
	case KindInt:
		// bool is a distinct type in the canonical representation, so it can
		// never satisfy Int; floats are excluded even when integral.
		if n, ok := v.(int64); ok {
			return n, nil
		}
		return nil, newError("expected an integer", v, sc)
	case KindFloat:
		// Integral values never satisfy Float: no implicit widening.
		if f, ok := v.(float64); ok {
			return f, nil
		}
		return nil, newError("expected a float", v, sc)
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, newError("expected a string", v, sc)
	case KindNull:
		if v == nil {
			return nil, nil
		}
		return nil, newError("expected null", v, sc)
	default:
		return nil, newError("[Internal Error] unknown type", v, sc)
	}
}

// extraneousKeys lists input keys with no declared schema field, sorted so
// reports stay deterministic across map iteration orders.
func extraneousKeys(obj map[string]any, declared map[string]struct{}) List {
	var names []string
	for k := range obj {
		if _, ok := declared[k]; !ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	var out List
	for _, k := range names {
		out = append(out, Line(k))
	}
	return out
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
