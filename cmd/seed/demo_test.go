package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoProducts_VentasHaciaAtrasDesdeHoy(t *testing.T) {
	reqs := demoProducts(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, reqs, len(demoCatalog))

	mug := reqs[0]
	require.Len(t, mug.Sales, 6)
	assert.Equal(t, 2024, mug.Sales[0].Year)
	assert.Equal(t, 2, mug.Sales[0].Month)
	assert.Equal(t, 120, mug.Sales[0].UnitsSold)
	assert.Equal(t, 2023, mug.Sales[2].Year, "cruza al año anterior")
	assert.Equal(t, 12, mug.Sales[2].Month)

	assert.Empty(t, reqs[len(reqs)-1].Sales, "el lanzamiento no tiene historial")
}

func TestDemoProducts_ParametrosValidos(t *testing.T) {
	for _, r := range demoProducts(time.Now()) {
		assert.NotEmpty(t, r.SKU)
		assert.GreaterOrEqual(t, r.LeadTimeDays, 1, r.SKU)
		require.NotNil(t, r.ZValue, r.SKU)
		assert.True(t, r.ZValue.IsPositive(), r.SKU)
		for _, s := range r.Sales {
			assert.GreaterOrEqual(t, s.UnitsSold, 0, r.SKU)
		}
	}
}
