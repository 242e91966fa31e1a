package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Run("kinds", func(t *testing.T) {
		tokens, err := Tokenize(`<?xml version="1.0"?> <!-- c --><!DOCTYPE x><?php echo ?><a k="v">  some   text </a><br />`)
		require.NoError(t, err)
		kinds := make([]TokenKind, len(tokens))
		for idx, tok := range tokens {
			kinds[idx] = tok.Kind
		}
		assert.Equal(t, []TokenKind{
			TokenHeader, TokenComment, TokenDeclaration, TokenDeclaration,
			TokenOpen, TokenText, TokenClose, TokenSelfClosing,
		}, kinds)
		assert.Equal(t, `a k="v"`, tokens[4].Body)
		assert.Equal(t, "a", tokens[4].Name())
		assert.Equal(t, "some text", tokens[5].Body)
		assert.Equal(t, "a", tokens[6].Body)
		assert.Equal(t, "br", tokens[7].Body)
	})
	t.Run("offsets", func(t *testing.T) {
		tokens, err := Tokenize("<a>\n  hi</a>")
		require.NoError(t, err)
		require.Len(t, tokens, 3)
		assert.Equal(t, 0, tokens[0].Offset)
		assert.Equal(t, 3, tokens[1].Offset)
		assert.Equal(t, 8, tokens[2].Offset)
	})
	t.Run("whitespace runs dropped", func(t *testing.T) {
		tokens, err := Tokenize("\n<a>\n\t</a>\n")
		require.NoError(t, err)
		assert.Len(t, tokens, 2)
	})
	t.Run("empty input", func(t *testing.T) {
		tokens, err := Tokenize("")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})
	t.Run("kind names", func(t *testing.T) {
		assert.Equal(t, "self-closing", TokenSelfClosing.String())
		assert.Equal(t, "unknown", TokenKind(99).String())
	})
}
