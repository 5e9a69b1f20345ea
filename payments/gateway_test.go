package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5000), ToMinorUnits(50))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(1), ToMinorUnits(0.01))
	assert.Equal(t, int64(10), ToMinorUnits(0.095))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}

func TestToMajorUnits(t *testing.T) {
	assert.Equal(t, 50.0, ToMajorUnits(5000))
	assert.Equal(t, 19.99, ToMajorUnits(1999))
	assert.Equal(t, 0.0, ToMajorUnits(0))
}

func TestSessionPaid(t *testing.T) {
	assert.True(t, (&Session{PaymentStatus: "paid"}).Paid())
	assert.False(t, (&Session{PaymentStatus: "unpaid"}).Paid())
	assert.False(t, (&Session{}).Paid())
}
