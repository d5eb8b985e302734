package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupReservedWords(t *testing.T) {
	for _, word := range ReservedWords() {
		assert.True(t, IsReserved(word), "ReservedWords entry %q not reported reserved", word)
		assert.NotEqual(t, WORD, Lookup(word), "reserved word %q lexed as a plain WORD", word)
	}
}

func TestLookupPlainWord(t *testing.T) {
	assert.Equal(t, WORD, Lookup("echo"))
	assert.False(t, IsReserved("echo"))
}
