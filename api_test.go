package shapecheck_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	shapecheck "github.com/shapecheck/shapecheck"
	"github.com/shapecheck/shapecheck/dsl"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func spanAttr(s sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range s.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestValidateEmitsSpan(t *testing.T) {
	sr := recordSpans(t)
	s := dsl.Record("User", dsl.Field("id", dsl.Int()))

	_, err := shapecheck.Validate(context.Background(), s, map[string]any{"id": 1})
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "shapecheck.Validate", spans[0].Name())
	v, ok := spanAttr(spans[0], "validation.target")
	require.True(t, ok)
	assert.Equal(t, "User", v.AsString())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestValidateSpanOnFailure(t *testing.T) {
	sr := recordSpans(t)

	_, err := shapecheck.Validate(context.Background(), dsl.Int(), "x")
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "expected an integer", spans[0].Status().Description)
}

func TestValidateSpanUnionFallbackName(t *testing.T) {
	sr := recordSpans(t)
	s := dsl.Union(dsl.Int(), dsl.String())

	_, err := shapecheck.Validate(context.Background(), s, 1)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	v, ok := spanAttr(spans[0], "validation.target")
	require.True(t, ok)
	assert.Equal(t, "union[integer | string]", v.AsString())
}

func TestConcurrentValidation(t *testing.T) {
	s := dsl.Record("Point",
		dsl.Field("a", dsl.Int()),
		dsl.FieldDefault("b", dsl.String(), "x"),
	)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				out, err := shapecheck.Validate(context.Background(), s, map[string]any{"a": n})
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if out.(map[string]any)["a"] != int64(n) {
					t.Errorf("wrong value: %v", out)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
