package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
)

func planDePrueba(n int) *dto.OrderPlanResponse {
	items := make([]dto.ProductSummaryDTO, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, dto.ProductSummaryDTO{
			Product: dto.ProductResponse{SKU: "SKU-" + string(rune('A'+i)), Name: "Taza", LeadTimeDays: 14, FBAStock: 10},
			Metrics: dto.MetricsDTO{ReorderPoint: decimal.RequireFromString("48.1737"), OrderUnits: 186},
		})
	}
	return &dto.OrderPlanResponse{
		Items:              items,
		Total:              n,
		HorizonDays:        60,
		OrderQuantityLabel: planning.OrderQuantityLabel,
		WindowMonths:       []string{"2024-03", "2024-02", "2024-01"},
	}
}

func TestGeneratePlanPDF_DocumentoValido(t *testing.T) {
	out, err := NewMarotoPlanGenerator().GeneratePlanPDF(context.Background(), planDePrueba(3), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "debe ser un PDF")
}

func TestGeneratePlanPDF_PlanVacio(t *testing.T) {
	out, err := NewMarotoPlanGenerator().GeneratePlanPDF(context.Background(), planDePrueba(0), time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGeneratePlanPDF_PlanNil(t *testing.T) {
	_, err := NewMarotoPlanGenerator().GeneratePlanPDF(context.Background(), nil, time.Now())
	assert.Error(t, err)
}

func TestFormatThousands(t *testing.T) {
	casos := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1.000",
		25000:   "25.000",
		1000000: "1.000.000",
		-1250:   "-1.250",
	}
	for n, want := range casos {
		assert.Equal(t, want, formatThousands(n))
	}
}
