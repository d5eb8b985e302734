package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shev-sh/shev/internal/token"
)

func toks(items []Item) []token.Token {
	out := make([]token.Token, len(items))
	for i, it := range items {
		out[i] = it.Tok
	}
	return out
}

func TestAllSimpleWords(t *testing.T) {
	items := All("echo hello world")
	assert.Equal(t, []token.Token{token.WORD, token.WORD, token.WORD, token.EOF}, toks(items))
	assert.Equal(t, "echo", items[0].Lit)
	assert.Equal(t, "hello", items[1].Lit)
	assert.Equal(t, "world", items[2].Lit)
}

func TestAllOperators(t *testing.T) {
	items := All("a && b || c | d ; e & f ;; { g } ( h )")
	got := toks(items)
	assert.Equal(t, []token.Token{
		token.WORD, token.AND, token.WORD, token.OR, token.WORD, token.PIPE, token.WORD,
		token.SEMI, token.WORD, token.AMP, token.WORD, token.DSEMI,
		token.LBRACE, token.WORD, token.RBRACE, token.LPAREN, token.WORD, token.RPAREN,
		token.EOF,
	}, got)
}

func TestAllRedirects(t *testing.T) {
	items := All("cmd < in >> out <& 3 >& 4 <> both")
	got := toks(items)
	assert.Contains(t, got, token.LSS)
	assert.Contains(t, got, token.SHR)
	assert.Contains(t, got, token.LSSAMP)
	assert.Contains(t, got, token.GTRAMP)
	assert.Contains(t, got, token.LSSGTR)
}

func TestLexWordStripsQuotes(t *testing.T) {
	items := All(`echo "hello world" 'it''s'`)
	assert.Equal(t, "hello world", items[1].Lit)
	assert.Equal(t, "its", items[2].Lit)
}

func TestReservedWordsLexAsKeywords(t *testing.T) {
	items := All("if true then echo fi")
	assert.Equal(t, token.IF, items[0].Tok)
	assert.Equal(t, token.THEN, items[2].Tok)
	assert.Equal(t, token.FI, items[4].Tok)
}

func TestEmptyLineIsJustEOF(t *testing.T) {
	items := All("   ")
	assert.Equal(t, []Item{{Tok: token.EOF}}, items)
}
