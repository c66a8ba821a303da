package stringlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParse_Nil(t *testing.T) {
	items, err := Parse(nil)
	assert.NoError(t, err)
	assert.Nil(t, items)
}

func TestParse_EmptyString(t *testing.T) {
	items, err := Parse(strPtr("  "))
	assert.NoError(t, err)
	assert.Nil(t, items)
}

func TestParse_JSONArray(t *testing.T) {
	items, err := Parse(strPtr(`["https://x/a.jpg","https://x/b.jpg"]`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://x/a.jpg", "https://x/b.jpg"}, items)
}

func TestParse_JSONArrayMalformed(t *testing.T) {
	items, err := Parse(strPtr(`["unterminated`))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Nil(t, items)
}

func TestParse_ArrayLiteral(t *testing.T) {
	items, err := Parse(strPtr(`{https://x/a.jpg,https://x/b.jpg}`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://x/a.jpg", "https://x/b.jpg"}, items)
}

func TestParse_ArrayLiteralQuoted(t *testing.T) {
	items, err := Parse(strPtr(`{"https://x/a (1).jpg","with, comma"}`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://x/a (1).jpg", "with, comma"}, items)
}

func TestParse_ArrayLiteralEmpty(t *testing.T) {
	items, err := Parse(strPtr(`{}`))
	assert.NoError(t, err)
	assert.Nil(t, items)
}

func TestParse_CommaDelimited(t *testing.T) {
	items, err := Parse(strPtr("https://x/a.jpg, https://x/b.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://x/a.jpg", "https://x/b.jpg"}, items)
}

func TestParse_NewlineDelimited(t *testing.T) {
	// Newline wins over comma so URLs containing commas survive.
	items, err := Parse(strPtr("https://x/a,1.jpg\nhttps://x/b.jpg\n"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://x/a,1.jpg", "https://x/b.jpg"}, items)
}

func TestEncode_Empty(t *testing.T) {
	assert.Nil(t, Encode(nil))
	assert.Nil(t, Encode([]string{}))
	assert.Nil(t, Encode([]string{""}))
}

func TestEncode_RoundTrip(t *testing.T) {
	encoded := Encode([]string{"a", "b"})
	assert.NotNil(t, encoded)
	assert.Equal(t, `["a","b"]`, *encoded)

	items, err := Parse(encoded)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestRemove(t *testing.T) {
	items := []string{"a", "b", "c", "b"}
	assert.Equal(t, []string{"a", "c"}, Remove(items, "b"))
	// Case-sensitive: "B" does not match "b".
	assert.Equal(t, []string{"a", "b", "c", "b"}, Remove(items, "B"))
	assert.Empty(t, Remove([]string{"x"}, "x"))
}
