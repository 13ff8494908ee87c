package catalog

import (
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/stretchr/testify/assert"
)

func TestSeedOrdersMatchTheirItems(t *testing.T) {
	for _, o := range Orders() {
		subtotal := cart.ComputeTotals(o.Items).Subtotal
		assert.True(t, subtotal.Equal(o.Total), "%s: items sum to %s, total is %s", o.ID, subtotal, o.Total)
	}
}

func TestProductsAreFreshCopies(t *testing.T) {
	a := Products()
	a[0].Stock = 0
	*a[0].Description = "changed"

	b := Products()
	assert.Equal(t, 25, b[0].Stock)
	assert.NotEqual(t, "changed", *b[0].Description)
}
