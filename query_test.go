package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menu = `<shop>
	<item price="4.29" flavor="vanilla">Cone</item>
	<item price="1.5">Cup</item>
	<box><item price="9" sale>Tub</item></box>
</shop>`

func TestQuery(t *testing.T) {
	doc, err := ParseString(menu)
	require.NoError(t, err)
	root := doc.Root

	data := func(nodes []*Node) []string {
		out := make([]string, len(nodes))
		for idx, n := range nodes {
			out[idx] = n.Data()
		}
		return out
	}

	t.Run("numeric attribute", func(t *testing.T) {
		found, err := root.Query(`tag == 'item' && num('price') < 5`)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cone", "Cup"}, data(found))
	})
	t.Run("has and attr", func(t *testing.T) {
		found, err := root.Query(`has('sale') || attr('flavor') == 'vanilla'`)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cone", "Tub"}, data(found))
	})
	t.Run("children", func(t *testing.T) {
		found, err := root.Query(`children > 0`)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "shop", found[0].Tag())
		assert.Equal(t, "box", found[1].Tag())
	})
	t.Run("data", func(t *testing.T) {
		found, err := root.Query(`data == 'Cup'`)
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})
	t.Run("not boolean", func(t *testing.T) {
		_, err := root.Query(`num('price') + 1`)
		assert.Error(t, err)
	})
	t.Run("unknown variable", func(t *testing.T) {
		_, err := root.Query(`color == 'red'`)
		assert.Error(t, err)
	})
	t.Run("syntax error", func(t *testing.T) {
		_, err := root.Query(`tag ==`)
		assert.Error(t, err)
	})
}
