package shapecheck_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	shapecheck "github.com/shapecheck/shapecheck"
)

func TestNormalizeScalars(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bool", true, true},
		{"string", "x", "x"},
		{"int", int(7), int64(7)},
		{"int8", int8(-3), int64(-3)},
		{"int32", int32(1 << 20), int64(1 << 20)},
		{"int64", int64(9), int64(9)},
		{"uint16", uint16(9), int64(9)},
		{"uint64 small", uint64(42), int64(42)},
		{"uint64 overflow", uint64(math.MaxUint64), float64(math.MaxUint64)},
		{"float32", float32(1.5), float64(1.5)},
		{"float64", 2.5, 2.5},
		{"number integral", json.Number("12"), int64(12)},
		{"number fractional", json.Number("1.25"), 1.25},
		{"number garbage", json.Number("nope"), "nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shapecheck.Normalize(tc.in))
		})
	}
}

func TestNormalizeContainers(t *testing.T) {
	in := map[string]any{
		"n":  1,
		"xs": []any{int32(2), float32(0.5)},
	}
	out := shapecheck.Normalize(in).(map[string]any)
	assert.Equal(t, int64(1), out["n"])
	assert.Equal(t, []any{int64(2), 0.5}, out["xs"])

	// The copy must not alias the input.
	out["n"] = int64(99)
	assert.Equal(t, 1, in["n"])
}

func TestNormalizeAnyKeyedMap(t *testing.T) {
	in := map[any]any{"a": 1, 2: "b"}
	out := shapecheck.Normalize(in).(map[string]any)
	assert.Equal(t, int64(1), out["a"])
	assert.Equal(t, "b", out["2"])
}

func TestNormalizeUnknownTypePassesThrough(t *testing.T) {
	type opaque struct{ n int }
	v := opaque{n: 1}
	assert.Equal(t, v, shapecheck.Normalize(v))
}
