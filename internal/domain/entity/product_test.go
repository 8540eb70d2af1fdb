package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
)

// Normalize aplica la tabla de defaults una sola vez, al leer el registro.
func TestProduct_NormalizeAplicaDefaults(t *testing.T) {
	p := entity.Product{ID: "p1", Name: "Sin parámetros"}
	p.Normalize()

	assert.Equal(t, 7, p.Reorder.LeadTimeDays)
	assert.Equal(t, 7, p.Reorder.SafetyStockDays)
	assert.Equal(t, 7, p.Reorder.ReviewPeriodDays)
	assert.True(t, p.Reorder.FreightCostPerUnit.IsZero())
	assert.Equal(t, 1, p.Reorder.MinOrderQuantity)
}

// Valores válidos se respetan; inválidos (cero o negativos) caen al default.
func TestProduct_NormalizeRespetaValoresValidos(t *testing.T) {
	p := entity.Product{
		ID:    "p1",
		Stock: -3,
		Reorder: entity.ReorderParams{
			LeadTimeDays:       14,
			SafetyStockDays:    -1,
			ReviewPeriodDays:   10,
			FreightCostPerUnit: decimal.NewFromFloat(2.5),
			MinOrderQuantity:   0,
		},
	}
	p.Normalize()

	assert.Equal(t, 14, p.Reorder.LeadTimeDays, "valor explícito válido no se toca")
	assert.Equal(t, 7, p.Reorder.SafetyStockDays, "negativo cae al default")
	assert.Equal(t, 10, p.Reorder.ReviewPeriodDays)
	assert.True(t, decimal.NewFromFloat(2.5).Equal(p.Reorder.FreightCostPerUnit))
	assert.Equal(t, 1, p.Reorder.MinOrderQuantity, "el lote mínimo nunca baja de 1")
	assert.Zero(t, p.Stock, "stock negativo se trunca a cero")
}
