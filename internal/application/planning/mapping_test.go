package planning

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderUnits_RedondeoYLimites(t *testing.T) {
	assert.Equal(t, 186, orderUnits(186.1737))
	assert.Equal(t, 2, orderUnits(2.5), "mitad al par")
	assert.Equal(t, 4, orderUnits(3.5))
	assert.Equal(t, 0, orderUnits(0))
	assert.Equal(t, 0, orderUnits(math.NaN()))
	assert.Equal(t, math.MaxInt32, orderUnits(9.223372036854776e+18), "no desborda a negativo")
	assert.Equal(t, math.MaxInt32, orderUnits(math.Inf(1)))
}
