package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOps(t *testing.T) {
	t.Run("strip", func(t *testing.T) {
		assert.Equal(t, "a b", strip(" \t a b \n"))
		assert.Equal(t, "", strip(""))
		assert.Equal(t, "", strip(" \n\t "))
	})
	t.Run("condense", func(t *testing.T) {
		assert.Equal(t, " a b c ", condense("  a \n\t b c\n"))
		assert.Equal(t, "", condense(""))
		assert.Equal(t, " ", condense("\n \t"))
	})
	t.Run("split and join", func(t *testing.T) {
		words := split("  key=value \n other  ")
		assert.Equal(t, []string{"key=value", "other"}, words)
		assert.Equal(t, "key=value other", join(words))
		assert.Empty(t, split(""))
		assert.Empty(t, split("   "))
		assert.Equal(t, "", join(nil))
	})
	t.Run("split one", func(t *testing.T) {
		assert.Equal(t, "item", splitOne("  item price=1"))
		assert.Equal(t, "item", splitOne("item"))
		assert.Equal(t, "", splitOne("   "))
	})
	t.Run("split first", func(t *testing.T) {
		first, rest := splitFirst(" item  price=1 sale ")
		assert.Equal(t, "item", first)
		assert.Equal(t, "price=1 sale ", rest)
		first, rest = splitFirst("")
		assert.Equal(t, "", first)
		assert.Equal(t, "", rest)
	})
}
