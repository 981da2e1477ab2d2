package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un SKU de un propietario con sus parámetros de reposición.
// Los parámetros se editan por el usuario; el motor de reorden nunca los modifica.
type Product struct {
	ID           string
	OwnerID      string
	SKU          string // único por propietario
	Name         string
	LeadTimeDays int             // días entre pedido y llegada, >= 1
	ZValue       decimal.Decimal // coeficiente de servicio (ej. 1.65 ≈ 95%)
	FBAStock     int             // stock disponible en el centro de distribución
	InboundStock int             // stock en tránsito
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
