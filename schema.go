package shapecheck

import (
	"fmt"
	"strings"
	"sync"
)

// Schema is the declarative description of an expected JSON value shape.
// Schemas are built once at configuration time, are immutable afterwards, and
// may be shared freely across goroutines. The set of implementations is
// closed; the engine routes anything else through the internal-error path so
// schema-definition bugs surface as ordinary validation errors.
type Schema interface {
	fmt.Stringer
	schema()
}

// PrimKind enumerates the primitive schema kinds.
type PrimKind int

const (
	KindBool PrimKind = iota
	KindInt
	KindFloat
	KindString
	KindNull
)

func (k PrimKind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Primitive matches exactly one scalar kind. Int never accepts booleans or
// floats; Float never accepts integral values. There is no implicit numeric
// widening.
type Primitive struct {
	Kind PrimKind
}

func (p *Primitive) schema()        {}
func (p *Primitive) String() string { return p.Kind.String() }

// Field declares one Record field. When the key is absent from the input and
// a default is present, the default is substituted instead of reporting the
// field as missing. DefaultFunc takes precedence over DefaultValue so mutable
// defaults (slices, maps) are produced fresh per substitution.
type Field struct {
	Name         string
	Schema       Schema
	DefaultValue any
	DefaultFunc  func() any
	HasDefault   bool
}

// Record describes a fixed-field structured object. Field order is
// significant: failures are reported in declaration order.
type Record struct {
	Name   string
	Fields []Field
}

func (r *Record) schema() {}

func (r *Record) String() string {
	if r.Name != "" {
		return r.Name
	}
	return "record"
}

// KeyedObject is a record-like schema distinguishing required from optional
// keys, without default substitution. A missing optional key is silently
// skipped.
type KeyedObject struct {
	Name     string
	Required []string
	Optional []string
	Fields   map[string]Schema
}

func (k *KeyedObject) schema() {}

func (k *KeyedObject) String() string {
	if k.Name != "" {
		return k.Name
	}
	return "keyed object"
}

// Union tries its variants strictly in declared order and returns the first
// success, even if a later variant would also match. All variant failures are
// retained for diagnostics when nothing matches.
type Union struct {
	Variants []Schema
}

func (u *Union) schema() {}

func (u *Union) String() string {
	parts := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		parts[i] = v.String()
	}
	return "union[" + strings.Join(parts, " | ") + "]"
}

// Literal requires equality, by value, with one fixed value.
type Literal struct {
	Value any
}

func (l *Literal) schema()        {}
func (l *Literal) String() string { return "literal " + formatValue(l.Value) }

// Mapping validates every key and every value of an object independently
// against its key and value schemas.
type Mapping struct {
	Key   Schema
	Value Schema
}

func (m *Mapping) schema() {}

func (m *Mapping) String() string {
	return "map[" + m.Key.String() + " -> " + m.Value.String() + "]"
}

// Sequence validates every item of an array against a single item schema.
type Sequence struct {
	Item Schema
}

func (s *Sequence) schema()        {}
func (s *Sequence) String() string { return "list[" + s.Item.String() + "]" }

// Tuple validates a fixed-arity array pairwise against its item schemas.
type Tuple struct {
	Items []Schema
}

func (t *Tuple) schema() {}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Items))
	for i, item := range t.Items {
		parts[i] = item.String()
	}
	return "tuple[" + strings.Join(parts, ", ") + "]"
}

// Lazy defers schema construction until first use so self-referential shapes
// can be declared without forward references. Fn runs at most once; the
// resolved schema is cached. Always use Lazy by pointer.
type Lazy struct {
	Name string
	Fn   func() Schema

	once     sync.Once
	resolved Schema
}

func (l *Lazy) schema() {}

func (l *Lazy) String() string {
	if l.Name != "" {
		return l.Name
	}
	return "lazy"
}

// Resolve returns the boxed schema, constructing it on first call.
func (l *Lazy) Resolve() Schema {
	l.once.Do(func() { l.resolved = l.Fn() })
	return l.resolved
}

// Trusted passes its value through unchanged. It replaces ad-hoc "already
// validated" fast paths with an explicit, visible schema variant.
type Trusted struct {
	Name string
}

func (t *Trusted) schema() {}

func (t *Trusted) String() string {
	if t.Name != "" {
		return t.Name
	}
	return "trusted"
}
