package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerRoundTrip(t *testing.T) {
	p := Pointer("a/b", "m~n", "0")
	assert.Equal(t, "/a~1b/m~0n/0", p)
	assert.Equal(t, []string{"a/b", "m~n", "0"}, SplitPointer(p))
	assert.Equal(t, "", Pointer())
	assert.Nil(t, SplitPointer(""))
	assert.Equal(t, p, AppendPointer(Pointer("a/b", "m~n"), "0"))
}

func TestIsDescendant(t *testing.T) {
	assert.True(t, IsDescendant("/a/b", "/a"))
	assert.True(t, IsDescendant("/a", ""))
	assert.False(t, IsDescendant("/ab", "/a"))
	assert.False(t, IsDescendant("/a", "/a"))
}

func TestLookup(t *testing.T) {
	doc := obj("a", ArrayValue(IntValue(1), obj("b/c", StringValue("deep"))))

	got, ok := Lookup(doc, Pointer("a", "1", "b/c"))
	require.True(t, ok)
	assert.Equal(t, "deep", got.Str())

	_, ok = Lookup(doc, Pointer("a", "5"))
	assert.False(t, ok)
	_, ok = Lookup(doc, Pointer("nope"))
	assert.False(t, ok)

	root, ok := Lookup(doc, "")
	require.True(t, ok)
	assert.True(t, Equal(doc, root))
}
