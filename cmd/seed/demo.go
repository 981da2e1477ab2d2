package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/domain/inventory"
)

type demoSKU struct {
	sku, name    string
	leadTime     int
	z            string
	fba, inbound int
	units        []int // del mes actual hacia atrás; 0 < len <= 6
}

var demoCatalog = []demoSKU{
	{sku: "MUG-CER-01", name: "Taza de cerámica", leadTime: 14, z: "1.65", fba: 40, units: []int{120, 90, 60, 75, 80, 70}},
	{sku: "BOT-INOX-750", name: "Botella inoxidable 750 ml", leadTime: 30, z: "2.05", fba: 200, inbound: 150, units: []int{210, 190, 230, 180, 160, 150}},
	{sku: "TAP-YOGA-6", name: "Tapete de yoga 6 mm", leadTime: 45, z: "1.28", fba: 15, units: []int{35, 0, 42, 38}},
	{sku: "LAMP-LED-MINI", name: "Lámpara LED mini", leadTime: 21, z: "1.65", fba: 500, units: []int{20, 25, 18}},
	{sku: "NEW-LAUNCH-01", name: "Lanzamiento sin historial", leadTime: 30, z: "1.65"},
}

// demoProducts arma las solicitudes del catálogo demo con ventas fechadas hacia atrás desde today.
func demoProducts(today time.Time) []dto.SaveProductRequest {
	months := inventory.LastNCalendarMonths(inventory.TrendWindowMonths, today)
	out := make([]dto.SaveProductRequest, 0, len(demoCatalog))
	for _, d := range demoCatalog {
		z := decimal.RequireFromString(d.z)
		req := dto.SaveProductRequest{
			SKU:          d.sku,
			Name:         d.name,
			LeadTimeDays: d.leadTime,
			ZValue:       &z,
			FBAStock:     d.fba,
			InboundStock: d.inbound,
		}
		for i, u := range d.units {
			if i >= len(months) {
				break
			}
			req.Sales = append(req.Sales, dto.MonthlySaleInput{Year: months[i].Year, Month: months[i].Month, UnitsSold: u})
		}
		out = append(out, req)
	}
	return out
}
