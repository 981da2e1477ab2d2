// Package planningtest provee un TxRunner en memoria para tests de los casos de uso y handlers.
package planningtest

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/replenishment-planner/internal/application/planning"
	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
	"github.com/jhoicas/replenishment-planner/internal/domain/inventory"
	"github.com/jhoicas/replenishment-planner/internal/domain/repository"
)

var _ planning.TxRunner = (*Store)(nil)

type productKey struct{ owner, sku string }

type saleKey struct {
	owner, sku string
	ym         inventory.YearMonth
}

// Store guarda productos y ventas en memoria. Run revierte los cambios si fn devuelve error.
type Store struct {
	mu       sync.Mutex
	products map[productKey]entity.Product
	sales    map[saleKey]int

	// Fallas inyectables.
	UpsertSaleErr error
	ListErr       error

	ReadOnlyRuns int
	WriteRuns    int
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		products: map[productKey]entity.Product{},
		sales:    map[saleKey]int{},
	}
}

// Run ejecuta fn con repos en memoria; ante error restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MonthlySalesRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WriteRuns++
	products, sales := maps.Clone(s.products), maps.Clone(s.sales)
	if err := fn(productRepo{s}, salesRepo{s}); err != nil {
		s.products, s.sales = products, sales
		return err
	}
	return nil
}

// RunReadOnly ejecuta fn bajo el mismo candado que las escrituras.
func (s *Store) RunReadOnly(ctx context.Context, fn func(repository.ProductRepository, repository.MonthlySalesRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ReadOnlyRuns++
	return fn(productRepo{s}, salesRepo{s})
}

// PutProduct inserta un producto directamente.
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[productKey{p.OwnerID, p.SKU}] = p
}

// PutSale inserta una venta mensual directamente.
func (s *Store) PutSale(ownerID, sku string, year, month, units int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales[saleKey{ownerID, sku, inventory.YearMonth{Year: year, Month: month}}] = units
}

// Product devuelve una copia del producto guardado.
func (s *Store) Product(ownerID, sku string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productKey{ownerID, sku}]
	return p, ok
}

// Sale devuelve las unidades guardadas para un mes.
func (s *Store) Sale(ownerID, sku string, year, month int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.sales[saleKey{ownerID, sku, inventory.YearMonth{Year: year, Month: month}}]
	return u, ok
}

// SalesCount número total de filas de ventas.
func (s *Store) SalesCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

type productRepo struct{ s *Store }

func (r productRepo) Upsert(_ context.Context, p *entity.Product) error {
	k := productKey{p.OwnerID, p.SKU}
	if prev, ok := r.s.products[k]; ok {
		p.ID, p.CreatedAt = prev.ID, prev.CreatedAt
	}
	r.s.products[k] = *p
	return nil
}

func (r productRepo) GetByOwnerAndSKU(_ context.Context, ownerID, sku string) (*entity.Product, error) {
	p, ok := r.s.products[productKey{ownerID, sku}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Product, error) {
	if r.s.ListErr != nil {
		return nil, r.s.ListErr
	}
	var out []*entity.Product
	for k, p := range r.s.products {
		if k.owner == ownerID {
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Product) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		if a.SKU < b.SKU {
			return -1
		}
		if a.SKU > b.SKU {
			return 1
		}
		return 0
	})
	return out, nil
}

func (r productRepo) Delete(_ context.Context, ownerID, sku string) error {
	delete(r.s.products, productKey{ownerID, sku})
	return nil
}

type salesRepo struct{ s *Store }

func (r salesRepo) Upsert(_ context.Context, sale *entity.MonthlySale) error {
	if r.s.UpsertSaleErr != nil {
		return r.s.UpsertSaleErr
	}
	r.s.sales[saleKey{sale.OwnerID, sale.SKU, inventory.YearMonth{Year: sale.Year, Month: sale.Month}}] = sale.UnitsSold
	return nil
}

func (r salesRepo) GetUnits(_ context.Context, ownerID, sku string, months []inventory.YearMonth) (repository.MonthlyUnits, error) {
	out := repository.MonthlyUnits{}
	for _, ym := range months {
		if u, ok := r.s.sales[saleKey{ownerID, sku, ym}]; ok {
			out[ym] = u
		}
	}
	return out, nil
}

func (r salesRepo) GetUnitsByOwner(_ context.Context, ownerID string, months []inventory.YearMonth) (map[string]repository.MonthlyUnits, error) {
	out := map[string]repository.MonthlyUnits{}
	for k, u := range r.s.sales {
		if k.owner != ownerID || !slices.Contains(months, k.ym) {
			continue
		}
		if out[k.sku] == nil {
			out[k.sku] = repository.MonthlyUnits{}
		}
		out[k.sku][k.ym] = u
	}
	return out, nil
}

func (r salesRepo) DeleteBySKU(_ context.Context, ownerID, sku string) error {
	for k := range r.s.sales {
		if k.owner == ownerID && k.sku == sku {
			delete(r.s.sales, k)
		}
	}
	return nil
}
