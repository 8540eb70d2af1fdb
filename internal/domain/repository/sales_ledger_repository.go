package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
)

// SalesLedgerRepository acceso de solo lectura al libro de ventas.
// Fuente requerida: si falla, el ciclo de recálculo aborta.
type SalesLedgerRepository interface {
	// ListPaidSince devuelve las ventas pagadas con created_at >= since.
	ListPaidSince(ctx context.Context, since time.Time) ([]entity.Sale, error)
}
