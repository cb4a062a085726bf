// Package pathexpr implements dot/bracket path expressions over the Value
// model.
//
// An expression is parsed once into a sequence of segments, then folded
// over the tree. Parsing failures and lookup failures are distinct: the
// former are InvalidPathSyntax, the latter carry the path resolved so far.
package pathexpr

/*
Grammar:

	expr    = segment ('.' segment)*
	segment = IDENT suffix*
	suffix  = '[' INDEX ']'
	suffix  = '[' '*' ']'

	IDENT   = RE `[A-Za-z_]\w*`
	INDEX   = RE `\d+`

An empty expression is invalid, and a segment must start with an
identifier, so a leading bare integer is invalid. The '[*]' suffix is a
wildcard: it fans the remaining segments out over every element of an
array and collects the results into a new array.
*/

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jaathavan18/jot/internal/models"
)

// An Op is a segment operator.
type Op int

const (
	// Key is an object member access.
	Key Op = iota
	// Index is a zero-based array element access.
	Index
	// Wildcard expands over every element of an array.
	Wildcard
)

// A Segment is one step of a parsed path expression.
type Segment struct {
	Op    Op
	Key   string // for Key
	Index int    // for Index
}

func (s Segment) String() string {
	switch s.Op {
	case Key:
		return "." + s.Key
	case Index:
		return "[" + strconv.Itoa(s.Index) + "]"
	case Wildcard:
		return "[*]"
	}
	return ".<invalid>"
}

// An Expr is a parsed path expression.
type Expr []Segment

var (
	identRE = regexp.MustCompile(`^([A-Za-z_]\w*)`)
	indexRE = regexp.MustCompile(`^\[(\d+)\]`)
)

// Parse parses s as a path expression. Malformed expressions fail with an
// *Error of kind InvalidPathSyntax.
func Parse(s string) (Expr, error) {
	if strings.TrimSpace(s) == "" {
		return nil, syntaxErr("expression is empty")
	}
	var expr Expr
	rest := s
	for {
		m := identRE.FindStringSubmatch(rest)
		if m == nil {
			return nil, syntaxErr(fmt.Sprintf("expected identifier at %q", rest))
		}
		expr = append(expr, Segment{Op: Key, Key: m[1]})
		rest = rest[len(m[0]):]

		for strings.HasPrefix(rest, "[") {
			if t, ok := strings.CutPrefix(rest, "[*]"); ok {
				expr = append(expr, Segment{Op: Wildcard})
				rest = t
				continue
			}
			im := indexRE.FindStringSubmatch(rest)
			if im == nil {
				return nil, syntaxErr(fmt.Sprintf("invalid bracket suffix at %q", rest))
			}
			n, err := strconv.Atoi(im[1])
			if err != nil {
				return nil, syntaxErr(fmt.Sprintf("invalid index in %q", im[0]))
			}
			expr = append(expr, Segment{Op: Index, Index: n})
			rest = rest[len(im[0]):]
		}

		if rest == "" {
			return expr, nil
		}
		t, ok := strings.CutPrefix(rest, ".")
		if !ok {
			return nil, syntaxErr(fmt.Sprintf("unexpected character at %q", rest))
		}
		if t == "" {
			return nil, syntaxErr("trailing dot")
		}
		rest = t
	}
}

// Resolve parses expression and evaluates it against root. Resolution is
// all-or-nothing: on failure no partial result is returned. Neither input
// is mutated, so concurrent calls on the same root are safe.
func Resolve(root models.Value, expression string) (models.Value, error) {
	expr, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	return expr.Eval(root)
}

// Eval evaluates the expression against root.
func (e Expr) Eval(root models.Value) (models.Value, error) {
	return eval(root, e, "$")
}

func eval(cur models.Value, segs []Segment, path string) (models.Value, error) {
	for i, seg := range segs {
		switch seg.Op {
		case Key:
			obj, ok := cur.(models.Object)
			if !ok {
				return nil, typeErr(path, models.KindObject, cur.Kind())
			}
			v, ok := obj.Find(seg.Key)
			if !ok {
				return nil, &Error{Kind: KeyNotFound, Path: path, Key: seg.Key, Keys: obj.Keys()}
			}
			cur = v
			path += "." + seg.Key

		case Index:
			arr, ok := cur.(models.Array)
			if !ok {
				return nil, typeErr(path, models.KindArray, cur.Kind())
			}
			if seg.Index >= len(arr) {
				return nil, &Error{Kind: IndexOutOfRange, Path: path, Index: seg.Index, Length: len(arr)}
			}
			cur = arr[seg.Index]
			path += "[" + strconv.Itoa(seg.Index) + "]"

		case Wildcard:
			arr, ok := cur.(models.Array)
			if !ok {
				return nil, typeErr(path, models.KindArray, cur.Kind())
			}
			out := make(models.Array, 0, len(arr))
			for j, elt := range arr {
				v, err := eval(elt, segs[i+1:], path+"["+strconv.Itoa(j)+"]")
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		}
	}
	return cur, nil
}

func typeErr(path string, want, got models.Kind) *Error {
	return &Error{Kind: TypeMismatch, Path: path, Expected: want, Actual: got}
}

func syntaxErr(msg string) *Error {
	return &Error{Kind: InvalidPathSyntax, Message: msg}
}
