package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
	"github.com/tu-usuario/reseller-forecast/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura del catálogo de productos sobre PostgreSQL.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository construye el adaptador del catálogo.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// ListProducts devuelve todos los productos con parámetros de reposición.
// Los COALESCE replican entity.ReorderDefaults; Normalize vuelve a aplicar
// la misma tabla por si la fila trae valores inválidos (cero o negativos).
func (r *CatalogRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    p.price,
	    p.stock,
	    COALESCE(p.lead_time_days,        7) AS lead_time_days,
	    COALESCE(p.safety_stock_days,     7) AS safety_stock_days,
	    COALESCE(p.review_period_days,    7) AS review_period_days,
	    COALESCE(p.freight_cost_per_unit, 0) AS freight_cost_per_unit,
	    COALESCE(p.min_order_quantity,    1) AS min_order_quantity,
	    COALESCE(p.supplier_name,        '') AS supplier_name
	FROM products p
	ORDER BY p.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListProducts: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.Stock,
			&p.Reorder.LeadTimeDays,
			&p.Reorder.SafetyStockDays,
			&p.Reorder.ReviewPeriodDays,
			&p.Reorder.FreightCostPerUnit,
			&p.Reorder.MinOrderQuantity,
			&p.Reorder.SupplierName,
		); err != nil {
			return nil, fmt.Errorf("catalog.ListProducts scan: %w", err)
		}
		p.Normalize()
		products = append(products, p)
	}
	return products, rows.Err()
}
