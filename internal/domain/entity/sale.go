package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta registrada por un revendedor. Solo las ventas con Paid=true
// dentro de la ventana de demanda forman parte de la señal de demanda.
type Sale struct {
	ID          string
	ProductID   string
	ResellerID  string
	TotalAmount decimal.Decimal
	Paid        bool
	CreatedAt   time.Time
}
