package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
	"github.com/tu-usuario/reseller-forecast/internal/domain/repository"
)

var _ repository.SalesLedgerRepository = (*SalesLedgerRepo)(nil)

// SalesLedgerRepo lectura del libro de ventas sobre PostgreSQL.
type SalesLedgerRepo struct {
	pool *pgxpool.Pool
}

// NewSalesLedgerRepository construye el adaptador del libro de ventas.
func NewSalesLedgerRepository(pool *pgxpool.Pool) *SalesLedgerRepo {
	return &SalesLedgerRepo{pool: pool}
}

// ListPaidSince devuelve las ventas pagadas con created_at >= since.
// El filtro paid = TRUE deja fuera carritos abandonados y pagos pendientes:
// solo las ventas liquidadas cuentan como señal de demanda.
func (r *SalesLedgerRepo) ListPaidSince(ctx context.Context, since time.Time) ([]entity.Sale, error) {
	const query = `
	SELECT
	    s.id,
	    s.product_id,
	    s.reseller_id,
	    s.total_amount,
	    s.paid,
	    s.created_at
	FROM sales s
	WHERE s.paid = TRUE
	  AND s.created_at >= $1
	ORDER BY s.created_at`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("salesledger.ListPaidSince: %w", err)
	}
	defer rows.Close()

	var sales []entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID,
			&s.ProductID,
			&s.ResellerID,
			&s.TotalAmount,
			&s.Paid,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("salesledger.ListPaidSince scan: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
