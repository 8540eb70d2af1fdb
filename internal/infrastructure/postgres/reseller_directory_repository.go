package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
	"github.com/tu-usuario/reseller-forecast/internal/domain/repository"
)

var _ repository.ResellerDirectoryRepository = (*ResellerDirectoryRepo)(nil)

// ResellerDirectoryRepo lectura del directorio de revendedores.
type ResellerDirectoryRepo struct {
	pool *pgxpool.Pool
}

// NewResellerDirectoryRepository construye el adaptador del directorio.
func NewResellerDirectoryRepository(pool *pgxpool.Pool) *ResellerDirectoryRepo {
	return &ResellerDirectoryRepo{pool: pool}
}

func (r *ResellerDirectoryRepo) ListResellers(ctx context.Context) ([]entity.Reseller, error) {
	const query = `
	SELECT
	    r.id,
	    COALESCE(r.name,  '') AS name,
	    COALESCE(r.email, '') AS email
	FROM resellers r
	ORDER BY r.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("resellerdirectory.ListResellers: %w", err)
	}
	defer rows.Close()

	var resellers []entity.Reseller
	for rows.Next() {
		var re entity.Reseller
		if err := rows.Scan(&re.ID, &re.Name, &re.Email); err != nil {
			return nil, fmt.Errorf("resellerdirectory.ListResellers scan: %w", err)
		}
		resellers = append(resellers, re)
	}
	return resellers, rows.Err()
}
