package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscount(t *testing.T) {
	o := Offer{OfferAmountCents: 500}

	assert.Equal(t, int64(2000), o.Discount(2500))
	// Deliberately not floored at zero.
	assert.Equal(t, int64(-100), o.Discount(400))
}
