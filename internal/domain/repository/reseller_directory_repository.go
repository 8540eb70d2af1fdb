package repository

import (
	"context"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
)

// ResellerDirectoryRepository directorio de revendedores para atribución.
// Fuente opcional: su falla degrada a un directorio vacío, nunca aborta.
type ResellerDirectoryRepository interface {
	ListResellers(ctx context.Context) ([]entity.Reseller, error)
}
