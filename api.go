package shapecheck

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shapecheck/shapecheck/internal/decode"
)

const tracerName = "github.com/shapecheck/shapecheck"

// Options bundles validation options. Entry points take them variadically;
// the last value wins, mirroring per-call override semantics.
type Options struct {
	// MaxDepth caps the container nesting depth of the input. Zero means
	// unlimited. Recursion depth tracks the nesting of the data, not the
	// schema: a finite schema over an unbounded sequence or mapping can
	// recurse as deep as a hostile input nests, so stack-sensitive callers
	// should set a cap.
	MaxDepth int
}

func lastOption(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[len(opts)-1]
}

// Validate checks v against s and returns the conforming canonical value, or
// an *Error describing every way v failed to conform. Each call is wrapped in
// one trace span tagged with the schema display name; the span is a side
// channel only and has no bearing on the result. Validation itself is a pure
// tree walk: it never blocks and uses ctx only for span propagation.
func Validate(ctx context.Context, s Schema, v any, opts ...Options) (any, error) {
	opt := lastOption(opts)

	_, span := otel.Tracer(tracerName).Start(ctx, "shapecheck.Validate",
		trace.WithAttributes(attribute.String("validation.target", schemaName(s))))
	defer span.End()

	res, verr := validateValue(Normalize(v), s, 0, opt.MaxDepth)
	if verr != nil {
		span.RecordError(verr)
		span.SetStatus(codes.Error, verr.Msg)
		return nil, verr
	}
	span.SetStatus(codes.Ok, "")
	return res, nil
}

// ValidateFrom decodes one document from src and validates it against s.
// Decode failures are reported through the same *Error channel as validation
// failures so callers have a single failure path.
func ValidateFrom(ctx context.Context, s Schema, src Source, opts ...Options) (any, error) {
	opt := lastOption(opts)
	v, err := src.decode(opt)
	if err != nil {
		if errors.Is(err, decode.ErrMaxDepth) {
			return nil, newError("maximum nesting depth exceeded", nil, s)
		}
		e := newError("could not decode input", nil, s)
		e.Details = append(e.Details, Detail{Label: "cause", Value: Line(err.Error())})
		return nil, e
	}
	return Validate(ctx, s, v, opts...)
}

// Conforms reports whether v validates against s. No span is emitted.
func Conforms(s Schema, v any) bool {
	_, err := validateValue(Normalize(v), s, 0, 0)
	return err == nil
}
