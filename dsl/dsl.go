// Package dsl provides compact constructors for shapecheck schemas.
//
// Schemas are meant to be built once at startup and shared read-only:
//
//	var userSchema = dsl.Record("User",
//		dsl.Field("id", dsl.Int()),
//		dsl.Field("name", dsl.String()),
//		dsl.FieldDefault("role", dsl.Union(dsl.Literal("admin"), dsl.Literal("member")), "member"),
//	)
package dsl

import (
	shapecheck "github.com/shapecheck/shapecheck"
)

// Record declares a fixed-field object schema. Field order is preserved and
// drives the order failures are reported in.
func Record(name string, fields ...shapecheck.Field) shapecheck.Schema {
	return &shapecheck.Record{Name: name, Fields: fields}
}

// Field declares one record field with no default.
func Field(name string, s shapecheck.Schema) shapecheck.Field {
	return shapecheck.Field{Name: name, Schema: s}
}

// FieldDefault declares a record field whose value is substituted when the
// key is absent from the input.
func FieldDefault(name string, s shapecheck.Schema, def any) shapecheck.Field {
	return shapecheck.Field{Name: name, Schema: s, DefaultValue: def, HasDefault: true}
}

// FieldDefaultFunc declares a record field whose default is produced fresh
// per substitution, for mutable defaults like slices and maps.
func FieldDefaultFunc(name string, s shapecheck.Schema, fn func() any) shapecheck.Field {
	return shapecheck.Field{Name: name, Schema: s, DefaultFunc: fn, HasDefault: true}
}

// Keyed declares a record-like schema with explicit required and optional key
// sets and no default substitution.
func Keyed(name string, required, optional []string, fields map[string]shapecheck.Schema) shapecheck.Schema {
	return &shapecheck.KeyedObject{Name: name, Required: required, Optional: optional, Fields: fields}
}

// Union declares an ordered union; the first matching variant wins.
func Union(variants ...shapecheck.Schema) shapecheck.Schema {
	return &shapecheck.Union{Variants: variants}
}

// Literal requires equality with exactly one fixed value.
func Literal(v any) shapecheck.Schema { return &shapecheck.Literal{Value: v} }

// MapOf declares a homogeneous mapping schema.
func MapOf(key, value shapecheck.Schema) shapecheck.Schema {
	return &shapecheck.Mapping{Key: key, Value: value}
}

// SliceOf declares a homogeneous sequence schema.
func SliceOf(item shapecheck.Schema) shapecheck.Schema {
	return &shapecheck.Sequence{Item: item}
}

// TupleOf declares a fixed-arity sequence schema.
func TupleOf(items ...shapecheck.Schema) shapecheck.Schema {
	return &shapecheck.Tuple{Items: items}
}

// Bool matches exactly a boolean.
func Bool() shapecheck.Schema { return &shapecheck.Primitive{Kind: shapecheck.KindBool} }

// Int matches exactly an integral number; booleans and floats never match.
func Int() shapecheck.Schema { return &shapecheck.Primitive{Kind: shapecheck.KindInt} }

// Float matches exactly a fractional number; integral values never match.
func Float() shapecheck.Schema { return &shapecheck.Primitive{Kind: shapecheck.KindFloat} }

// String matches exactly a string.
func String() shapecheck.Schema { return &shapecheck.Primitive{Kind: shapecheck.KindString} }

// Null matches exactly null.
func Null() shapecheck.Schema { return &shapecheck.Primitive{Kind: shapecheck.KindNull} }

// Lazy defers construction until first use, enabling self-referential
// schemas. The name is used for display; fn runs at most once.
func Lazy(name string, fn func() shapecheck.Schema) shapecheck.Schema {
	return &shapecheck.Lazy{Name: name, Fn: fn}
}

// Trusted passes values through unchanged.
func Trusted(name string) shapecheck.Schema { return &shapecheck.Trusted{Name: name} }
