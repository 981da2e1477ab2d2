package planning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/domain"
	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
	"github.com/jhoicas/replenishment-planner/internal/domain/repository"
)

const (
	maxYear = 9999
	// z se guarda como NUMERIC(6,3)
	zDecimals = 3
	maxZValue = 1000
)

// CatalogUseCase casos de uso de escritura: parámetros de SKU y ventas mensuales.
type CatalogUseCase struct {
	tx            TxRunner
	defaultZValue decimal.Decimal
	now           func() time.Time
}

// NewCatalogUseCase construye el caso de uso. now puede ser nil (usa time.Now).
func NewCatalogUseCase(tx TxRunner, defaultZValue decimal.Decimal, now func() time.Time) *CatalogUseCase {
	if now == nil {
		now = time.Now
	}
	return &CatalogUseCase{tx: tx, defaultZValue: defaultZValue, now: now}
}

// SaveProductWithSales crea o actualiza el SKU y sobrescribe los meses de ventas enviados,
// todo en una sola transacción.
func (uc *CatalogUseCase) SaveProductWithSales(ctx context.Context, ownerID string, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" || !validQuantities(in.LeadTimeDays, in.FBAStock, in.InboundStock) {
		return nil, domain.ErrInvalidInput
	}
	zValue := uc.defaultZValue
	if in.ZValue != nil {
		zValue = *in.ZValue
	}
	zValue = zValue.Round(zDecimals)
	if !validZValue(zValue) {
		return nil, domain.ErrInvalidInput
	}
	if err := validateSales(in.Sales); err != nil {
		return nil, err
	}

	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		SKU:          sku,
		Name:         strings.TrimSpace(in.Name),
		LeadTimeDays: in.LeadTimeDays,
		ZValue:       zValue,
		FBAStock:     in.FBAStock,
		InboundStock: in.InboundStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, sales repository.MonthlySalesRepository) error {
		if err := products.Upsert(ctx, product); err != nil {
			return err
		}
		return upsertSales(ctx, sales, ownerID, sku, in.Sales, now)
	})
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// UpsertMonthlySales agrega o sobrescribe meses de ventas de un SKU existente del propietario.
func (uc *CatalogUseCase) UpsertMonthlySales(ctx context.Context, ownerID, sku string, in dto.UpsertSalesRequest) error {
	sku = strings.TrimSpace(sku)
	if sku == "" || len(in.Sales) == 0 {
		return domain.ErrInvalidInput
	}
	if err := validateSales(in.Sales); err != nil {
		return err
	}
	now := uc.now()
	return uc.tx.Run(ctx, func(products repository.ProductRepository, sales repository.MonthlySalesRepository) error {
		p, err := products.GetByOwnerAndSKU(ctx, ownerID, sku)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := upsertSales(ctx, sales, ownerID, sku, in.Sales, now); err != nil {
			return err
		}
		// marca el SKU como modificado para el orden del listado
		p.UpdatedAt = now
		return products.Upsert(ctx, p)
	})
}

// DeleteProduct elimina el SKU y todo su historial de ventas.
func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, ownerID, sku string) error {
	sku = strings.TrimSpace(sku)
	return uc.tx.Run(ctx, func(products repository.ProductRepository, sales repository.MonthlySalesRepository) error {
		p, err := products.GetByOwnerAndSKU(ctx, ownerID, sku)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := sales.DeleteBySKU(ctx, ownerID, sku); err != nil {
			return err
		}
		return products.Delete(ctx, ownerID, sku)
	})
}

func validateSales(rows []dto.MonthlySaleInput) error {
	for _, r := range rows {
		if r.Year < 1 || r.Year > maxYear || r.Month < 1 || r.Month > 12 || r.UnitsSold < 0 || r.UnitsSold > maxQuantity {
			return fmt.Errorf("%w: venta %04d-%02d", domain.ErrInvalidInput, r.Year, r.Month)
		}
	}
	return nil
}

// validQuantities comprueba lead time >= 1 y stocks >= 0, todos dentro de maxQuantity.
func validQuantities(leadTimeDays, fbaStock, inboundStock int) bool {
	return leadTimeDays >= 1 && leadTimeDays <= maxQuantity &&
		fbaStock >= 0 && fbaStock <= maxQuantity &&
		inboundStock >= 0 && inboundStock <= maxQuantity
}

func validZValue(z decimal.Decimal) bool {
	return !z.IsNegative() && z.LessThan(decimal.NewFromInt(maxZValue))
}

func upsertSales(ctx context.Context, repo repository.MonthlySalesRepository, ownerID, sku string, rows []dto.MonthlySaleInput, now time.Time) error {
	for _, r := range rows {
		sale := &entity.MonthlySale{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			SKU:       sku,
			Year:      r.Year,
			Month:     r.Month,
			UnitsSold: r.UnitsSold,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Upsert(ctx, sale); err != nil {
			return err
		}
	}
	return nil
}
