package repository

import (
	"context"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
)

// CatalogRepository acceso de solo lectura al catálogo de productos.
// Fuente requerida: si falla, el ciclo de recálculo aborta.
type CatalogRepository interface {
	// ListProducts devuelve todos los productos con sus parámetros de
	// reposición ya normalizados (defaults aplicados).
	ListProducts(ctx context.Context) ([]entity.Product, error)
}
