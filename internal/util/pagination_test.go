package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	offset, limit := Calculate(0, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, DefaultPageSize, limit)

	offset, limit = Calculate(3, 10)
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)

	_, limit = Calculate(1, 10000)
	assert.Equal(t, MaxPageSize, limit)

	offset, _ = Calculate(-5, 10)
	assert.Equal(t, 0, offset)
}
