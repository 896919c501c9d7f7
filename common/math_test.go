package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, 2.0, Lerp(2, 6, 0))
	assert.Equal(t, 6.0, Lerp(2, 6, 1))
	assert.Equal(t, 4.0, Lerp(2, 6, 0.5))
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{0, 1, 7, 1},
		{9, 1, 7, 7},
		{3, 1, 7, 3},
		{0, 5, -1, 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Clamp(c.v, c.lo, c.hi), "%v in [%v, %v]", c.v, c.lo, c.hi)
	}
}
