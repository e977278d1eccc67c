// Package decode builds canonical in-memory values from streaming tokens.
package decode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind enumerates token kinds produced by a token source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token is one streaming token. Numbers are carried as text so integral and
// fractional values stay distinguishable until conversion.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
}

// TokenSource yields tokens until io.EOF.
type TokenSource interface {
	NextToken() (Token, error)
}

// ErrMaxDepth reports that input nesting exceeded the configured cap.
var ErrMaxDepth = errors.New("maximum nesting depth exceeded")

// Any builds a canonical value (nil, bool, int64, float64, string, []any,
// map[string]any) from the token stream. Integral numbers become int64,
// everything else float64.
func Any(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok)
}

func decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return decodeNumber(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeNumber(text string) any {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}

func decodeObject(src TokenSource) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// WithMaxDepth wraps src so nesting beyond max fails with ErrMaxDepth. A max
// of zero or less disables the check.
func WithMaxDepth(src TokenSource, max int) TokenSource {
	if max <= 0 {
		return src
	}
	return &depthLimitSource{inner: src, max: max}
}

type depthLimitSource struct {
	inner TokenSource
	max   int
	depth int
}

func (d *depthLimitSource) NextToken() (Token, error) {
	tok, err := d.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		d.depth++
		if d.depth > d.max {
			return Token{}, fmt.Errorf("depth %d: %w", d.depth, ErrMaxDepth)
		}
	case KindEndObject, KindEndArray:
		if d.depth > 0 {
			d.depth--
		}
	}
	return tok, nil
}
