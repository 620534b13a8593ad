// Package objlit parses relaxed object literals such as `{ enabled: true, paths: ['a',] }`
// into plain JSON-compatible Go values.
//
// The grammar is JSON5: every strict JSON document is accepted, and on top of that keys
// may be bare identifiers, strings may use single quotes, trailing commas and comments
// are allowed, and numbers may be hexadecimal or start with a dot. Nothing is evaluated:
// the input is data, never code.
package objlit

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/titanous/json5"

	"github.com/kiosk404/pluginadm/pkg/utils/json"
)

// EmptyPlaceholder is what an empty object formats to: a blank line between the
// braces, ready for input.
const EmptyPlaceholder = "{\n  \n}"

// Error describes why a literal was rejected.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// errorAt places msg at the byte that made the decoder stop. offset counts the
// bytes read, that byte included.
func errorAt(src string, offset int64, msg string) *Error {
	if offset <= 0 || offset > int64(len(src)) {
		return &Error{Msg: msg}
	}
	at := int(offset) - 1
	line := 1 + strings.Count(src[:at], "\n")
	column := at + 1
	if nl := strings.LastIndexByte(src[:at], '\n'); nl >= 0 {
		column = at - nl
	}
	return &Error{Line: line, Column: column, Msg: msg}
}

func decodeError(src string, err error) *Error {
	var syntax *json5.SyntaxError
	if errors.As(err, &syntax) {
		return errorAt(src, syntax.Offset, syntax.Error())
	}
	var typ *json5.UnmarshalTypeError
	if errors.As(err, &typ) {
		return errorAt(src, typ.Offset, fmt.Sprintf("%s is out of range", typ.Value))
	}
	return &Error{Msg: err.Error()}
}

// Parse converts src into an object. The result has passed a strict JSON
// encode/decode round trip, so it only holds map[string]interface{},
// []interface{}, float64, string, bool and nil.
func Parse(src string) (map[string]interface{}, error) {
	var val interface{}
	if err := json5.Unmarshal([]byte(src), &val); err != nil {
		return nil, decodeError(src, err)
	}
	if _, ok := val.(map[string]interface{}); !ok {
		return nil, &Error{Msg: "options must be an object"}
	}
	if err := checkFinite(val); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(val)
	if err != nil {
		return nil, &Error{Msg: err.Error()}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, &Error{Msg: err.Error()}
	}
	return out, nil
}

// checkFinite rejects Infinity and NaN, which JSON cannot carry.
func checkFinite(v interface{}) error {
	switch v := v.(type) {
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return &Error{Msg: fmt.Sprintf("number %v is not allowed", v)}
		}
	case map[string]interface{}:
		for _, item := range v {
			if err := checkFinite(item); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, item := range v {
			if err := checkFinite(item); err != nil {
				return err
			}
		}
	}
	return nil
}

// Format pretty prints encoded JSON with two-space indentation, keeping the key
// order of raw. Absent, null and empty objects become EmptyPlaceholder.
func Format(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return EmptyPlaceholder, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return "", fmt.Errorf("format options: %w", err)
	}
	if buf.String() == "{}" {
		return EmptyPlaceholder, nil
	}
	return buf.String(), nil
}

// FormatValue encodes v and formats it like Format.
func FormatValue(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode options: %w", err)
	}
	return Format(raw)
}
