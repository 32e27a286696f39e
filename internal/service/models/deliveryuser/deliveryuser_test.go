package deliveryuser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignable(t *testing.T) {
	d := DeliveryUser{Pincode: "560001", Verified: true, IsAvailable: true}

	assert.True(t, d.Assignable("560001"))
	assert.False(t, d.Assignable("999999"))

	d.IsAvailable = false
	assert.False(t, d.Assignable("560001"))

	d.IsAvailable = true
	d.Verified = false
	assert.False(t, d.Assignable("560001"))
}
