// Package shapecheck validates JSON-shaped values against declared schemas.
//
// A Schema is an immutable tagged-variant tree describing the expected shape
// of a value: records with field defaults, keyed objects with explicit
// required/optional key sets, ordered unions (first match wins), literals,
// homogeneous mappings and sequences, fixed-arity tuples, primitives, lazy
// self-references, and trusted passthroughs. Validation either returns a
// value conforming to the schema or an *Error: an immutable tree recording
// every way the input failed to conform, renderable as an indented
// human-readable report (Explain) or as a fully faithful structured object
// (JSON).
//
// Design policy:
//   - Keep the public API in the root package; implementation detail lives
//     under internal/.
//   - Schema constructors live under dsl/.
//   - Validation is a pure recursive walk over immutable inputs. Concurrent
//     calls sharing schemas need no locking.
//
// Typical usage:
//
//	s := dsl.Record("User",
//		dsl.Field("name", dsl.String()),
//		dsl.FieldDefault("admin", dsl.Bool(), false),
//	)
//	v, err := shapecheck.Validate(ctx, s, input)
//	if e, ok := shapecheck.AsError(err); ok {
//		fmt.Print(e.Explain())
//	}
package shapecheck
