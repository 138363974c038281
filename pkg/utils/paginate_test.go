package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePagination(t *testing.T) {
	page, limit := NormalizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 5, limit)

	page, limit = NormalizePagination(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, 5, limit)

	page, limit = NormalizePagination(4, 20)
	assert.Equal(t, 4, page)
	assert.Equal(t, 20, limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(1, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 3, TotalPages(12, 5))
	assert.Equal(t, 0, TotalPages(12, 0))
}
