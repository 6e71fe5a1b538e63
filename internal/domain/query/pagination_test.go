package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Pagination
		expected Pagination
	}{
		{name: "defaults", in: Pagination{}, expected: Pagination{Offset: 0, Limit: 10}},
		{name: "negative offset clamped", in: Pagination{Offset: -5, Limit: 20}, expected: Pagination{Offset: 0, Limit: 20}},
		{name: "limit capped", in: Pagination{Offset: 0, Limit: 500}, expected: Pagination{Offset: 0, Limit: 100}},
		{name: "valid values untouched", in: Pagination{Offset: 40, Limit: 20}, expected: Pagination{Offset: 40, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPages(t *testing.T) {
	p := Pagination{Limit: 10}

	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 1, p.Pages(1))
	assert.Equal(t, 1, p.Pages(10))
	assert.Equal(t, 2, p.Pages(11))
}

func TestPage(t *testing.T) {
	assert.Equal(t, 1, (&Pagination{Offset: 0, Limit: 10}).Page())
	assert.Equal(t, 4, (&Pagination{Offset: 30, Limit: 10}).Page())
}
