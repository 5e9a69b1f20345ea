package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndComparePassword(t *testing.T) {
	user := User{Password: "s3cret-pass"}

	err := user.HashPassword()
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	assert.True(t, user.ComparePassword("s3cret-pass"))
	assert.False(t, user.ComparePassword("wrong-pass"))
	assert.False(t, user.ComparePassword(""))
}
