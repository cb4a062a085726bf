// Package format renders a Value back to JSON text under a chosen layout.
//
// The output is a pure function of the value and the options: object keys
// keep their stored order (unless sorting is requested), numbers reproduce
// their stored literal exactly, and whitespace follows the indent setting.
// Minified and pretty renderings of the same value re-parse to equal trees.
package format

import (
	"sort"

	"github.com/jaathavan18/jot/internal/models"
)

// Options control the layout of the rendered text.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero produces a
	// minified rendering with no insignificant whitespace.
	Indent int
	// SortKeys renders object keys in lexicographic order instead of
	// stored order, for callers that want byte-stable output regardless of
	// document key order.
	SortKeys bool
}

// Format renders v with the given indent. There is no trailing newline in
// either mode.
func Format(v models.Value, indent int) string {
	return Render(v, Options{Indent: indent})
}

// Render renders v under opts.
func Render(v models.Value, opts Options) string {
	buf := appendValue(nil, v, opts, 0)
	return string(buf)
}

func appendValue(buf []byte, v models.Value, opts Options, level int) []byte {
	switch t := v.(type) {
	case models.Null:
		return append(buf, "null"...)
	case models.Bool:
		if t {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case models.Number:
		return append(buf, t.String()...)
	case models.String:
		return appendQuoted(buf, string(t))
	case models.Array:
		return appendArray(buf, t, opts, level)
	case models.Object:
		return appendObject(buf, t, opts, level)
	}
	return buf
}

func appendArray(buf []byte, a models.Array, opts Options, level int) []byte {
	if len(a) == 0 {
		return append(buf, "[]"...)
	}
	buf = append(buf, '[')
	for i, elt := range a {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendNewlineIndent(buf, opts, level+1)
		buf = appendValue(buf, elt, opts, level+1)
	}
	buf = appendNewlineIndent(buf, opts, level)
	return append(buf, ']')
}

func appendObject(buf []byte, o models.Object, opts Options, level int) []byte {
	if len(o) == 0 {
		return append(buf, "{}"...)
	}
	members := o
	if opts.SortKeys {
		members = make(models.Object, len(o))
		copy(members, o)
		sort.SliceStable(members, func(i, j int) bool { return members[i].Key < members[j].Key })
	}
	buf = append(buf, '{')
	for i, m := range members {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendNewlineIndent(buf, opts, level+1)
		buf = appendQuoted(buf, m.Key)
		buf = append(buf, ':')
		if opts.Indent > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, m.Value, opts, level+1)
	}
	buf = appendNewlineIndent(buf, opts, level)
	return append(buf, '}')
}

func appendNewlineIndent(buf []byte, opts Options, level int) []byte {
	if opts.Indent == 0 {
		return buf
	}
	buf = append(buf, '\n')
	for i := 0; i < opts.Indent*level; i++ {
		buf = append(buf, ' ')
	}
	return buf
}

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// appendQuoted appends s as a JSON string literal. Printable characters
// outside ASCII pass through unescaped.
func appendQuoted(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for _, r := range s {
		if r < ' ' {
			if b := controlEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
			continue
		}
		switch r {
		case '"', '\\':
			buf = append(buf, '\\', byte(r))
		default:
			buf = append(buf, string(r)...)
		}
	}
	return append(buf, '"')
}
