package pathexpr

import (
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaathavan18/jot/internal/models"
	"github.com/jaathavan18/jot/internal/parser"
)

func mustParseDoc(t *testing.T, s string) models.Value {
	t.Helper()
	v, err := parser.ParseString(s)
	require.NoError(t, err)
	return v
}

func TestParse_ValidExpressions(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  Expr
	}{
		{"name", Expr{{Op: Key, Key: "name"}}},
		{"a.b.c", Expr{{Op: Key, Key: "a"}, {Op: Key, Key: "b"}, {Op: Key, Key: "c"}}},
		{"users[0]", Expr{{Op: Key, Key: "users"}, {Op: Index, Index: 0}}},
		{"users[0].email", Expr{{Op: Key, Key: "users"}, {Op: Index, Index: 0}, {Op: Key, Key: "email"}}},
		{"grid[1][2]", Expr{{Op: Key, Key: "grid"}, {Op: Index, Index: 1}, {Op: Index, Index: 2}}},
		{"users[*].name", Expr{{Op: Key, Key: "users"}, {Op: Wildcard}, {Op: Key, Key: "name"}}},
		{"_private.x2", Expr{{Op: Key, Key: "_private"}, {Op: Key, Key: "x2"}}},
	} {
		got, err := Parse(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParse_InvalidExpressions(t *testing.T) {
	for _, input := range []string{
		"",        // empty expression
		"   ",     // whitespace only
		"0",       // leading bare integer
		"[0]",     // bracket with no preceding key
		"a..b",    // empty segment
		"a.",      // trailing dot
		".a",      // leading dot
		"a[",      // unmatched bracket
		"a[]",     // empty index
		"a[x]",    // non-numeric index
		"a[-1]",   // negative index
		"a[1.5]",  // fractional index
		"a b",     // stray character
		"a[0]b",   // suffix must be followed by dot or end
	} {
		_, err := Parse(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, stderrors.Is(err, ErrInvalidPathSyntax), "input %q got %v", input, err)
	}
}

func TestResolve_Examples(t *testing.T) {
	doc := mustParseDoc(t, `{"users":[{"name":"Alice"},{"name":"Bob"}]}`)

	got, err := Resolve(doc, "users[0].name")
	require.NoError(t, err)
	assert.True(t, models.Equal(models.String("Alice"), got))

	got, err = Resolve(doc, "users[1].name")
	require.NoError(t, err)
	assert.True(t, models.Equal(models.String("Bob"), got))

	_, err = Resolve(doc, "users[5].name")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrIndexOutOfRange))

	var pathErr *Error
	require.True(t, stderrors.As(err, &pathErr))
	assert.Equal(t, "$.users", pathErr.Path)
	assert.Equal(t, 5, pathErr.Index)
	assert.Equal(t, 2, pathErr.Length)
}

func TestResolve_NestedKeys(t *testing.T) {
	doc := mustParseDoc(t, `{"config":{"database":{"host":"localhost","port":5432}}}`)

	got, err := Resolve(doc, "config.database.host")
	require.NoError(t, err)
	assert.True(t, models.Equal(models.String("localhost"), got))
}

func TestResolve_KeyNotFound(t *testing.T) {
	doc := mustParseDoc(t, `{"a":{"b":1}}`)

	_, err := Resolve(doc, "a.missing")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrKeyNotFound))

	var pathErr *Error
	require.True(t, stderrors.As(err, &pathErr))
	assert.Equal(t, "$.a", pathErr.Path)
	assert.Equal(t, "missing", pathErr.Key)
	assert.Equal(t, []string{"b"}, pathErr.Keys)
}

func TestResolve_TypeMismatch(t *testing.T) {
	doc := mustParseDoc(t, `{"a":{"b":1},"list":[1,2]}`)

	// Key access on a non-object.
	_, err := Resolve(doc, "a.b.c")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrTypeMismatch))
	var pathErr *Error
	require.True(t, stderrors.As(err, &pathErr))
	assert.Equal(t, "$.a.b", pathErr.Path)
	assert.Equal(t, models.KindObject, pathErr.Expected)
	assert.Equal(t, models.KindNumber, pathErr.Actual)

	// Index access on a non-array.
	_, err = Resolve(doc, "a[0]")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrTypeMismatch))
	require.True(t, stderrors.As(err, &pathErr))
	assert.Equal(t, models.KindArray, pathErr.Expected)
	assert.Equal(t, models.KindObject, pathErr.Actual)
}

func TestResolve_AllOrNothing(t *testing.T) {
	doc := mustParseDoc(t, `{"a":{"b":{"c":1}}}`)

	// A failure deep in the fold returns no partial value.
	v, err := Resolve(doc, "a.b.missing")
	assert.Error(t, err)
	assert.Nil(t, v)
}

func TestResolve_Wildcard(t *testing.T) {
	doc := mustParseDoc(t, `{"users":[{"name":"Alice"},{"name":"Bob"}]}`)

	got, err := Resolve(doc, "users[*].name")
	require.NoError(t, err)
	want := models.Array{models.String("Alice"), models.String("Bob")}
	assert.True(t, models.Equal(want, got))

	// Wildcard over an empty array yields an empty array.
	empty := mustParseDoc(t, `{"users":[]}`)
	got, err = Resolve(empty, "users[*].name")
	require.NoError(t, err)
	assert.True(t, models.Equal(models.Array{}, got))

	// A missing key inside the fan-out fails the whole resolution.
	ragged := mustParseDoc(t, `{"users":[{"name":"Alice"},{"id":2}]}`)
	_, err = Resolve(ragged, "users[*].name")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrKeyNotFound))
	var pathErr *Error
	require.True(t, stderrors.As(err, &pathErr))
	assert.Equal(t, "$.users[1]", pathErr.Path)

	// Wildcard requires an array.
	obj := mustParseDoc(t, `{"users":{"alice":1}}`)
	_, err = Resolve(obj, "users[*]")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrTypeMismatch))
}

func TestResolve_ConcurrentReads(t *testing.T) {
	doc := mustParseDoc(t, `{"users":[{"name":"Alice"},{"name":"Bob"}]}`)

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			_, err := Resolve(doc, "users[1].name")
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		assert.NoError(t, <-done)
	}
}

func TestSegmentString(t *testing.T) {
	assert.Equal(t, ".name", Segment{Op: Key, Key: "name"}.String())
	assert.Equal(t, "[3]", Segment{Op: Index, Index: 3}.String())
	assert.Equal(t, "[*]", Segment{Op: Wildcard}.String())
}
