package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePriceChange(t *testing.T) {
	cases := []struct {
		name            string
		priceAtFavorite float64
		currentPrice    float64
		expected        PriceChange
	}{
		{"unchanged", 1000, 1000, PriceChange{}},
		{"zero snapshot", 0, 500, PriceChange{}},
		{"reduced", 1000, 900, PriceChange{HasChanged: true, IsReduced: true, PercentChange: 10}},
		{"increased", 1000, 1250, PriceChange{HasChanged: true, IsReduced: false, PercentChange: 25}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			change := ComputePriceChange(tc.priceAtFavorite, tc.currentPrice)

			assert.Equal(t, tc.expected.HasChanged, change.HasChanged)
			assert.Equal(t, tc.expected.IsReduced, change.IsReduced)
			assert.InDelta(t, tc.expected.PercentChange, change.PercentChange, 0.001)
		})
	}
}
