package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasUpvoted(t *testing.T) {
	issue := Issue{UpvotedBy: []string{"a@x.com", "b@x.com"}}

	assert.True(t, issue.HasUpvoted("a@x.com"))
	assert.True(t, issue.HasUpvoted("b@x.com"))
	assert.False(t, issue.HasUpvoted("c@x.com"))

	empty := Issue{}
	assert.False(t, empty.HasUpvoted("a@x.com"))
}

func TestValidCategory(t *testing.T) {
	for _, c := range CategoryOrder {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("Potholes"))
	assert.False(t, ValidCategory(""))
}

func TestValidStatus(t *testing.T) {
	for _, s := range StatusOrder {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Done"))
	assert.False(t, ValidStatus(""))
}

func TestFixedOrders(t *testing.T) {
	assert.Equal(t, []string{"High", "Normal"}, PriorityOrder)
	assert.Equal(t, "Pending", StatusOrder[0])
	assert.Equal(t, "Closed", StatusOrder[len(StatusOrder)-1])
	assert.Equal(t, "Road Damage", CategoryOrder[0])
	assert.Equal(t, "Other", CategoryOrder[len(CategoryOrder)-1])
}
