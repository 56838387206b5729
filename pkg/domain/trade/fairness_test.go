package trade_test

import (
	"testing"

	"github.com/cardex/cardex/pkg/domain/trade"
	"github.com/stretchr/testify/assert"
)

func TestCalculateFairness(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		v1, v2 int
		want   string
	}{
		{"equal values", 500, 500, trade.Fair},
		{"small difference", 500, 450, trade.Fair},
		{"exactly at threshold", 500, 400, trade.Fair},
		{"just past threshold", 500, 399, trade.Unfair},
		{"lopsided", 1000, 100, trade.Unfair},
		{"zero against zero", 0, 0, trade.Fair},
		{"zero against value", 0, 100, trade.Unfair},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, trade.CalculateFairness(tc.v1, tc.v2))
		})
	}
}

func TestCalculateFairness_Symmetric(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	pairs := [][2]int{{500, 400}, {500, 399}, {1, 1000}, {0, 7}}
	for _, p := range pairs {
		assert.Equal(
			trade.CalculateFairness(p[0], p[1]),
			trade.CalculateFairness(p[1], p[0]),
			"verdict must not depend on argument order",
		)
	}
}

func TestCalculateFairness_CustomThreshold(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal(trade.Unfair, trade.CalculateFairness(500, 450, 5))
	assert.Equal(trade.Fair, trade.CalculateFairness(500, 450, 10))
	assert.Equal(trade.Fair, trade.CalculateFairness(500, 100, 80))
	assert.Equal(trade.Fair, trade.CalculateFairness(100, 100, 0), "equal values are fair at any threshold")
}
