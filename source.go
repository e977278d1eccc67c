package shapecheck

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/shapecheck/shapecheck/internal/decode"
)

// Source abstracts over the supported input encodings. A Source decodes one
// document into the canonical value representation consumed by the engine.
type Source interface {
	decode(opt Options) (any, error)
}

// JSONBytes wraps a JSON document held in memory.
func JSONBytes(b []byte) Source { return jsonSource{r: bytes.NewReader(b)} }

// JSONReader wraps a JSON document read from r.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

// YAMLBytes wraps a YAML document held in memory.
func YAMLBytes(b []byte) Source { return yamlSource{r: bytes.NewReader(b)} }

// YAMLReader wraps a YAML document read from r.
func YAMLReader(r io.Reader) Source { return yamlSource{r: r} }

type jsonSource struct{ r io.Reader }

func (s jsonSource) decode(opt Options) (any, error) {
	return decode.Any(decode.WithMaxDepth(newJSONTokens(s.r), opt.MaxDepth))
}

type yamlSource struct{ r io.Reader }

func (s yamlSource) decode(opt Options) (any, error) {
	var node any
	if err := yaml.NewDecoder(s.r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document decodes to null.
			return nil, nil
		}
		return nil, err
	}
	v := Normalize(node)
	if opt.MaxDepth > 0 && valueDepth(v) > opt.MaxDepth {
		return nil, decode.ErrMaxDepth
	}
	return v, nil
}

// ---- go-json token adapter ----

// jsonTokens adapts a go-json decoder into a decode.TokenSource. The frame
// stack tracks whether the next string token inside an object is a key.
type jsonTokens struct {
	dec   *json.Decoder
	stack []tokenFrame
}

type tokenFrame struct {
	inObject     bool
	expectingKey bool
}

func newJSONTokens(r io.Reader) *jsonTokens {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonTokens{dec: dec}
}

func (s *jsonTokens) NextToken() (decode.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return decode.Token{}, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, tokenFrame{inObject: true, expectingKey: true})
			return decode.Token{Kind: decode.KindBeginObject}, nil
		case '}':
			s.pop()
			return decode.Token{Kind: decode.KindEndObject}, nil
		case '[':
			s.stack = append(s.stack, tokenFrame{})
			return decode.Token{Kind: decode.KindBeginArray}, nil
		default: // ']'
			s.pop()
			return decode.Token{Kind: decode.KindEndArray}, nil
		}
	case string:
		if t := s.top(); t != nil && t.inObject && t.expectingKey {
			t.expectingKey = false
			return decode.Token{Kind: decode.KindKey, String: v}, nil
		}
		s.noteValue()
		return decode.Token{Kind: decode.KindString, String: v}, nil
	case json.Number:
		s.noteValue()
		return decode.Token{Kind: decode.KindNumber, Number: string(v)}, nil
	case float64:
		// UseNumber makes this unreachable with the default decoder; kept
		// for decoder implementations that ignore it.
		s.noteValue()
		return decode.Token{Kind: decode.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		s.noteValue()
		return decode.Token{Kind: decode.KindBool, Bool: v}, nil
	default: // nil
		s.noteValue()
		return decode.Token{Kind: decode.KindNull}, nil
	}
}

func (s *jsonTokens) top() *tokenFrame {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.stack[len(s.stack)-1]
}

// pop drops the innermost frame; the enclosing object, if any, just finished
// reading a value, so its next string token is a key again.
func (s *jsonTokens) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.noteValue()
}

func (s *jsonTokens) noteValue() {
	if t := s.top(); t != nil && t.inObject && !t.expectingKey {
		t.expectingKey = true
	}
}
