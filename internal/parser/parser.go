// Package parser converts JSON text into the Value model. It is the only
// place raw text enters the system: both safety limits (input size and
// nesting depth) are enforced here, before a tree is handed to any other
// component.
//
// Decoding walks the token stream directly instead of unmarshaling into Go
// maps, so object members come out in document order.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/jaathavan18/jot/internal/errors"
	"github.com/jaathavan18/jot/internal/limits"
	"github.com/jaathavan18/jot/internal/models"
)

// ParseString parses a single JSON document from s.
func ParseString(s string) (models.Value, error) {
	return ParseBytes([]byte(s))
}

// ParseBytes parses a single JSON document from data. The size limit is
// checked before decoding begins, and the depth limit is enforced while the
// tree is built.
func ParseBytes(data []byte) (models.Value, error) {
	if err := limits.CheckSize(len(data)); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return Parse(bytes.NewReader(data))
}

// ParseFile parses a single JSON document from the file at path.
func ParseFile(path string) (models.Value, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(fmt.Sprintf("file '%s' does not exist", path), errors.ErrFileNotFound)
		}
		return nil, errors.NewInputError(fmt.Sprintf("cannot access file '%s'", path), err)
	}
	if info.Size() == 0 {
		return nil, errors.NewInputError(fmt.Sprintf("file '%s' is empty", path), errors.ErrFileEmpty)
	}
	if err := limits.CheckSize(int(info.Size())); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
	}
	return ParseBytes(data)
}

// Parse decodes a single JSON document from reader. Callers that already
// hold the raw bytes should prefer ParseBytes, which also applies the size
// limit.
func Parse(reader io.Reader) (models.Value, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	root, err := decodeValue(dec, 0)
	if err != nil {
		return nil, classifyDecodeError(err)
	}

	// A document is exactly one JSON value; anything but EOF after the
	// first value is an error.
	switch _, err := dec.Token(); {
	case err == nil:
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	case stderrors.Is(err, io.EOF):
		return root, nil
	default:
		return nil, classifyDecodeError(err)
	}
}

func classifyDecodeError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err // already classified, such as a depth limit failure
	}
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// decodeValue decodes the next value from the token stream. depth is the
// number of containers already entered; descending past the depth limit
// fails without building the rest of the tree.
func decodeValue(dec *json.Decoder, depth int) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		if depth+1 > limits.MaxDepth {
			return nil, errors.NewLimitsError(
				fmt.Sprintf("document exceeds the maximum nesting depth of %d", limits.MaxDepth),
				errors.ErrNestingTooDeep,
			)
		}
		switch t {
		case '{':
			return decodeObject(dec, depth+1)
		case '[':
			return decodeArray(dec, depth+1)
		}
		// Closing delimiters never appear at a value position; the decoder
		// reports them as syntax errors before we get here.
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case json.Number:
		n, err := models.NumberFromLiteral(string(t))
		if err != nil {
			return nil, err
		}
		return n, nil
	case string:
		return models.String(t), nil
	case bool:
		return models.Bool(t), nil
	case nil:
		return models.Null{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder, depth int) (models.Value, error) {
	obj := models.Object{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key token %v", tok)
		}
		val, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		// Duplicate keys: the last occurrence wins, keeping the position of
		// the first so member order stays stable.
		if idx := indexOf(obj, key); idx >= 0 {
			obj[idx].Value = val
		} else {
			obj = append(obj, models.Field(key, val))
		}
	}
}

func indexOf(obj models.Object, key string) int {
	for i, m := range obj {
		if m.Key == key {
			return i
		}
	}
	return -1
}

func decodeArray(dec *json.Decoder, depth int) (models.Value, error) {
	arr := models.Array{}
	for dec.More() {
		val, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// ReadInput reads a raw document from path, or from r when path is empty.
// Piped input is required when reading from a stream; an interactive
// terminal with no data yields ErrNoInput.
func ReadInput(path string, r io.Reader) (models.Value, error) {
	if path != "" && path != "-" {
		return ParseFile(path)
	}
	data, err := io.ReadAll(io.LimitReader(r, limits.MaxInputSize+1))
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return ParseBytes(data)
}
