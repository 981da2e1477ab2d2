package planning_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
	"github.com/jhoicas/replenishment-planner/internal/application/planning/planningtest"
	"github.com/jhoicas/replenishment-planner/internal/domain"
)

var zPorDefecto = decimal.RequireFromString("1.65")

func newCatalog(store *planningtest.Store) *planning.CatalogUseCase {
	return planning.NewCatalogUseCase(store, zPorDefecto, fixedClock)
}

func TestSaveProductWithSales_CreaProductoYVentas(t *testing.T) {
	store := planningtest.NewStore()

	out, err := newCatalog(store).SaveProductWithSales(context.Background(), ownerA, dto.SaveProductRequest{
		SKU:          "  SKU-1 ",
		Name:         "Taza",
		LeadTimeDays: 14,
		FBAStock:     10,
		InboundStock: 5,
		Sales: []dto.MonthlySaleInput{
			{Year: 2024, Month: 1, UnitsSold: 60},
			{Year: 2024, Month: 2, UnitsSold: 90},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "SKU-1", out.SKU, "el SKU se guarda sin espacios")
	assert.True(t, zPorDefecto.Equal(out.ZValue), "sin z_value se usa el valor por defecto")
	p, ok := store.Product(ownerA, "SKU-1")
	require.True(t, ok)
	assert.Equal(t, 14, p.LeadTimeDays)
	u, ok := store.Sale(ownerA, "SKU-1", 2024, 2)
	require.True(t, ok)
	assert.Equal(t, 90, u)
	assert.Equal(t, 2, store.SalesCount())
}

func TestSaveProductWithSales_RedondeaZATresDecimales(t *testing.T) {
	store := planningtest.NewStore()
	z := decimal.RequireFromString("1.6449")

	out, err := newCatalog(store).SaveProductWithSales(context.Background(), ownerA, dto.SaveProductRequest{
		SKU: "SKU-Z", LeadTimeDays: 7, ZValue: &z,
	})
	require.NoError(t, err)

	assert.Equal(t, "1.645", out.ZValue.String(), "la respuesta muestra el z que se guarda")
	p, ok := store.Product(ownerA, "SKU-Z")
	require.True(t, ok)
	assert.True(t, out.ZValue.Equal(p.ZValue))
}

func TestSaveProductWithSales_SobrescribeMesExistente(t *testing.T) {
	store := planningtest.NewStore()
	uc := newCatalog(store)
	req := dto.SaveProductRequest{
		SKU: "SKU-1", LeadTimeDays: 14,
		Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 1, UnitsSold: 60}},
	}
	_, err := uc.SaveProductWithSales(context.Background(), ownerA, req)
	require.NoError(t, err)

	z := decimal.RequireFromString("2.33")
	req.ZValue = &z
	req.Sales[0].UnitsSold = 75
	_, err = uc.SaveProductWithSales(context.Background(), ownerA, req)
	require.NoError(t, err)

	u, _ := store.Sale(ownerA, "SKU-1", 2024, 1)
	assert.Equal(t, 75, u)
	assert.Equal(t, 1, store.SalesCount())
	p, _ := store.Product(ownerA, "SKU-1")
	assert.True(t, z.Equal(p.ZValue))
}

func TestSaveProductWithSales_ErrorEnVentas_RevierteProducto(t *testing.T) {
	store := planningtest.NewStore()
	store.UpsertSaleErr = errors.New("db caída")

	_, err := newCatalog(store).SaveProductWithSales(context.Background(), ownerA, dto.SaveProductRequest{
		SKU: "SKU-1", LeadTimeDays: 14,
		Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 1, UnitsSold: 60}},
	})
	require.Error(t, err)

	_, ok := store.Product(ownerA, "SKU-1")
	assert.False(t, ok, "producto y ventas se guardan juntos o no se guardan")
}

func TestSaveProductWithSales_EntradasInvalidas(t *testing.T) {
	negativo := decimal.NewFromInt(-1)
	mil := decimal.NewFromInt(1000)
	casiMil := decimal.RequireFromString("999.9996")
	casos := map[string]dto.SaveProductRequest{
		"sku vacío":            {SKU: "   ", LeadTimeDays: 14},
		"lead time cero":       {SKU: "A", LeadTimeDays: 0},
		"stock negativo":       {SKU: "A", LeadTimeDays: 1, FBAStock: -1},
		"tránsito negativo":    {SKU: "A", LeadTimeDays: 1, InboundStock: -1},
		"z negativo":           {SKU: "A", LeadTimeDays: 1, ZValue: &negativo},
		"mes 13":               {SKU: "A", LeadTimeDays: 1, Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 13}}},
		"mes 0":                {SKU: "A", LeadTimeDays: 1, Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 0}}},
		"año 0":                {SKU: "A", LeadTimeDays: 1, Sales: []dto.MonthlySaleInput{{Year: 0, Month: 1}}},
		"ventas negativas":     {SKU: "A", LeadTimeDays: 1, Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 1, UnitsSold: -3}}},
		"z desde mil":          {SKU: "A", LeadTimeDays: 1, ZValue: &mil},
		"z redondea a mil":     {SKU: "A", LeadTimeDays: 1, ZValue: &casiMil},
		"stock sobre INTEGER":  {SKU: "A", LeadTimeDays: 1, FBAStock: math.MaxInt32 + 1},
		"ventas sobre INTEGER": {SKU: "A", LeadTimeDays: 1, Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 1, UnitsSold: math.MaxInt32 + 1}}},
	}
	for nombre, in := range casos {
		t.Run(nombre, func(t *testing.T) {
			store := planningtest.NewStore()
			_, err := newCatalog(store).SaveProductWithSales(context.Background(), ownerA, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, store.WriteRuns, "no se abre transacción con entradas inválidas")
		})
	}
}

func TestUpsertMonthlySales_ProductoInexistente(t *testing.T) {
	store := planningtest.NewStore()

	err := newCatalog(store).UpsertMonthlySales(context.Background(), ownerA, "NOPE", dto.UpsertSalesRequest{
		Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 1, UnitsSold: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, store.SalesCount())
}

func TestUpsertMonthlySales_SkuDeOtroPropietario(t *testing.T) {
	store := planningtest.NewStore()
	sembrar(store)

	err := newCatalog(store).UpsertMonthlySales(context.Background(), ownerB, "A-1", dto.UpsertSalesRequest{
		Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 3, UnitsSold: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	u, _ := store.Sale(ownerA, "A-1", 2024, 3)
	assert.Equal(t, 120, u)
}

func TestUpsertMonthlySales_AgregaYActualizaFecha(t *testing.T) {
	store := planningtest.NewStore()
	sembrar(store)

	err := newCatalog(store).UpsertMonthlySales(context.Background(), ownerA, "B-2", dto.UpsertSalesRequest{
		Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 3, UnitsSold: 45}},
	})
	require.NoError(t, err)

	u, ok := store.Sale(ownerA, "B-2", 2024, 3)
	require.True(t, ok)
	assert.Equal(t, 45, u)
	p, _ := store.Product(ownerA, "B-2")
	assert.True(t, p.UpdatedAt.Equal(hoy))
}

func TestUpsertMonthlySales_SinFilas(t *testing.T) {
	err := newCatalog(planningtest.NewStore()).UpsertMonthlySales(context.Background(), ownerA, "A-1", dto.UpsertSalesRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteProduct_EliminaProductoYVentas(t *testing.T) {
	store := planningtest.NewStore()
	sembrar(store)

	require.NoError(t, newCatalog(store).DeleteProduct(context.Background(), ownerA, "A-1"))

	_, ok := store.Product(ownerA, "A-1")
	assert.False(t, ok)
	_, ok = store.Sale(ownerA, "A-1", 2024, 3)
	assert.False(t, ok)
	_, ok = store.Sale(ownerA, "C-3", 2024, 3)
	assert.True(t, ok, "las ventas de otros SKUs se conservan")
}

func TestDeleteProduct_Inexistente(t *testing.T) {
	err := newCatalog(planningtest.NewStore()).DeleteProduct(context.Background(), ownerA, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
