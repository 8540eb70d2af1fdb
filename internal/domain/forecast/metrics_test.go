package forecast_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
	"github.com/tu-usuario/reseller-forecast/internal/domain/forecast"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// testNow instante fijo para que los cortes de ventana sean deterministas.
var testNow = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

// testProduct producto con parámetros por defecto ya normalizados.
func testProduct(id string, stock int) entity.Product {
	p := entity.Product{
		ID:    id,
		Name:  "Producto " + id,
		Price: decimal.NewFromInt(10),
		Stock: stock,
	}
	p.Normalize()
	return p
}

// saleDaysAgo venta pagada de `resellerID` hace `daysAgo` días.
func saleDaysAgo(id, productID, resellerID string, daysAgo int, amount int64) entity.Sale {
	return entity.Sale{
		ID:          id,
		ProductID:   productID,
		ResellerID:  resellerID,
		TotalAmount: decimal.NewFromInt(amount),
		Paid:        true,
		CreatedAt:   testNow.AddDate(0, 0, -daysAgo),
	}
}

// salesSpread n ventas del producto, una por día, empezando hace 1 día.
func salesSpread(productID string, n int) []entity.Sale {
	sales := make([]entity.Sale, 0, n)
	for d := 1; d <= n; d++ {
		sales = append(sales, saleDaysAgo(
			fmt.Sprintf("%s-s%d", productID, d), productID, "rev-1", d, 50,
		))
	}
	return sales
}

func compute(products []entity.Product, sales []entity.Sale) []forecast.ProductMetrics {
	return forecast.ComputeMetrics(products, sales, nil, testNow, forecast.DefaultTuning())
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios numéricos
// ──────────────────────────────────────────────────────────────────────────────

// Caso de referencia: 10 ventas en 10 días distintos, lote mínimo de 5.
// Verifica cada paso de la cadena de cálculo con valores exactos.
func TestComputeMetrics_CasoReferencia(t *testing.T) {
	p := entity.Product{
		ID:    "p1",
		Name:  "Crema facial",
		Price: decimal.NewFromInt(10),
		Stock: 5,
		Reorder: entity.ReorderParams{
			LeadTimeDays:       7,
			SafetyStockDays:    7,
			ReviewPeriodDays:   7,
			FreightCostPerUnit: decimal.NewFromInt(1),
			MinOrderQuantity:   5,
		},
	}

	metrics := compute([]entity.Product{p}, salesSpread("p1", 10))
	require.Len(t, metrics, 1)
	m := metrics[0]

	assert.InDelta(t, 1.0, m.AvgDailySales, 1e-9, "10 ventas / 10 días = 1 por día")
	assert.InDelta(t, 7.0, m.AvgWeeklySales, 1e-9)
	assert.InDelta(t, 30.0, m.AvgMonthlySales, 1e-9)
	assert.Equal(t, 7, m.SafetyStock)
	assert.Equal(t, 14, m.ReorderPoint)
	assert.Equal(t, 21, m.RecommendedStock)
	assert.Equal(t, 20, m.SuggestedPurchase, "16 crudo redondeado al lote de 5")
	assert.Equal(t, 5, m.DaysUntilStockout)
	assert.True(t, decimal.NewFromInt(220).Equal(m.TotalPurchaseCost),
		"20 × (10 + 1) = 220, se obtuvo %s", m.TotalPurchaseCost)
	assert.Equal(t, forecast.StatusReorderNow, m.Status, "stock 5 ≤ punto de reorden 14")
}

// Stock cero domina cualquier otra regla de estado, con o sin historial.
func TestComputeMetrics_StockCeroSiempreOutOfStock(t *testing.T) {
	metrics := compute([]entity.Product{testProduct("p1", 0)}, salesSpread("p1", 10))
	require.Len(t, metrics, 1)
	assert.Equal(t, forecast.StatusOutOfStock, metrics[0].Status)

	// También sin ventas
	metrics = compute([]entity.Product{testProduct("p2", 0)}, nil)
	require.Len(t, metrics, 1)
	assert.Equal(t, forecast.StatusOutOfStock, metrics[0].Status)
}

// Sin ventas calificadas: demanda cero, centinela 999 y estado healthy
// cuando hay stock.
func TestComputeMetrics_SinVentas(t *testing.T) {
	metrics := compute([]entity.Product{testProduct("p1", 10)}, nil)
	require.Len(t, metrics, 1)
	m := metrics[0]

	assert.Zero(t, m.AvgDailySales)
	assert.Equal(t, forecast.TrendNoSales, m.Trend)
	assert.Equal(t, forecast.NoDepletionSignal, m.DaysUntilStockout)
	assert.Zero(t, m.SuggestedPurchase)
	assert.Equal(t, forecast.StatusHealthy, m.Status)
	assert.Empty(t, m.ResellerBreakdown)
}

// Las ventas no pagadas o fuera de la ventana de 30 días no son señal.
func TestComputeMetrics_IgnoraNoPagadasYFueraDeVentana(t *testing.T) {
	unpaid := saleDaysAgo("s1", "p1", "rev-1", 2, 50)
	unpaid.Paid = false
	old := saleDaysAgo("s2", "p1", "rev-1", 45, 50)

	metrics := compute([]entity.Product{testProduct("p1", 10)}, []entity.Sale{unpaid, old})
	require.Len(t, metrics, 1)
	assert.Equal(t, forecast.TrendNoSales, metrics[0].Trend)
	assert.Zero(t, metrics[0].AvgDailySales)
}

// Catálogo vacío produce métricas vacías.
func TestComputeMetrics_CatalogoVacio(t *testing.T) {
	metrics := compute(nil, salesSpread("p1", 5))
	assert.Empty(t, metrics)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificador de tendencia
// ──────────────────────────────────────────────────────────────────────────────

// 12 ventas recientes contra 10 anteriores: 12 > 10 × 1.1 ⇒ increasing.
func TestComputeMetrics_TendenciaCreciente(t *testing.T) {
	var sales []entity.Sale
	n := 0
	add := func(daysAgo int) {
		n++
		sales = append(sales, saleDaysAgo(fmt.Sprintf("s%d", n), "p1", "rev-1", daysAgo, 50))
	}
	// Ventana reciente (días 1–7): 12 ventas en 7 días distintos
	for d := 1; d <= 5; d++ {
		add(d)
		add(d)
	}
	add(6)
	add(7)
	// Ventana anterior (días 8–14): 10 ventas
	for d := 8; d <= 12; d++ {
		add(d)
		add(d)
	}

	metrics := compute([]entity.Product{testProduct("p1", 100)}, sales)
	require.Len(t, metrics, 1)
	assert.Equal(t, forecast.TrendIncreasing, metrics[0].Trend)
}

// Dentro de la banda de histéresis (±10%) la tendencia es estable.
func TestComputeMetrics_TendenciaEstableEnBanda(t *testing.T) {
	var sales []entity.Sale
	id := 0
	add := func(daysAgo int) {
		id++
		sales = append(sales, saleDaysAgo(fmt.Sprintf("s%d", id), "p1", "rev-1", daysAgo, 50))
	}
	// 10 recientes (días 1–7, 7 días distintos) y 10 anteriores:
	// 10 no supera 11 ni baja de 9.
	for d := 1; d <= 7; d++ {
		add(d)
	}
	add(1)
	add(2)
	add(3)
	for d := 8; d <= 12; d++ {
		add(d)
		add(d)
	}

	metrics := compute([]entity.Product{testProduct("p1", 100)}, sales)
	require.Len(t, metrics, 1)
	assert.Equal(t, forecast.TrendStable, metrics[0].Trend)
}

// Caída por debajo del 90% de la ventana anterior ⇒ decreasing.
func TestComputeMetrics_TendenciaDecreciente(t *testing.T) {
	var sales []entity.Sale
	id := 0
	add := func(daysAgo int) {
		id++
		sales = append(sales, saleDaysAgo(fmt.Sprintf("s%d", id), "p1", "rev-1", daysAgo, 50))
	}
	// 7 recientes contra 10 anteriores: 7 < 9
	for d := 1; d <= 7; d++ {
		add(d)
	}
	for d := 8; d <= 12; d++ {
		add(d)
		add(d)
	}

	metrics := compute([]entity.Product{testProduct("p1", 100)}, sales)
	require.Len(t, metrics, 1)
	assert.Equal(t, forecast.TrendDecreasing, metrics[0].Trend)
}

// Con historial pero menos de 7 días con datos: insufficient_data, aunque
// el total vendido sea alto.
func TestComputeMetrics_PocosDiasConDatos(t *testing.T) {
	var sales []entity.Sale
	for d := 1; d <= 3; d++ {
		for k := 0; k < 3; k++ {
			sales = append(sales, saleDaysAgo(
				fmt.Sprintf("s%d-%d", d, k), "p1", "rev-1", d, 50,
			))
		}
	}

	metrics := compute([]entity.Product{testProduct("p1", 100)}, sales)
	require.Len(t, metrics, 1)
	assert.Equal(t, forecast.TrendInsufficientData, metrics[0].Trend,
		"9 ventas en solo 3 días distintos no alcanzan para clasificar tendencia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

// La compra sugerida siempre es múltiplo no negativo del lote mínimo.
func TestComputeMetrics_CompraSugeridaMultiploDelLote(t *testing.T) {
	products := []entity.Product{}
	for i, min := range []int{1, 3, 5, 12, 50} {
		p := testProduct(fmt.Sprintf("p%d", i+1), i*2)
		p.Reorder.MinOrderQuantity = min
		products = append(products, p)
	}
	var sales []entity.Sale
	for _, p := range products {
		sales = append(sales, salesSpread(p.ID, 9)...)
	}

	for _, m := range compute(products, sales) {
		assert.GreaterOrEqual(t, m.SuggestedPurchase, 0)
		assert.Zero(t, m.SuggestedPurchase%m.MinOrderQuantity,
			"la compra sugerida de %s debe ser múltiplo de %d", m.ProductID, m.MinOrderQuantity)
	}
}

// El listado sale ordenado: prioridad de estado no decreciente y, dentro de
// un mismo estado, demanda diaria no creciente.
func TestComputeMetrics_OrdenPorPrioridad(t *testing.T) {
	priority := map[forecast.StockStatus]int{
		forecast.StatusOutOfStock: 0,
		forecast.StatusReorderNow: 1,
		forecast.StatusLowStock:   2,
		forecast.StatusHealthy:    3,
	}

	products := []entity.Product{
		testProduct("sano", 500),
		testProduct("agotado", 0),
		testProduct("sano-2", 400),
		testProduct("reorden", 2),
	}
	sales := append(salesSpread("agotado", 8), salesSpread("reorden", 10)...)
	sales = append(sales, salesSpread("sano", 6)...)

	metrics := compute(products, sales)
	require.Len(t, metrics, 4)
	assert.Equal(t, "agotado", metrics[0].ProductID, "out_of_stock encabeza el listado")

	for i := 1; i < len(metrics); i++ {
		prev, cur := metrics[i-1], metrics[i]
		assert.LessOrEqual(t, priority[prev.Status], priority[cur.Status])
		if prev.Status == cur.Status {
			assert.GreaterOrEqual(t, prev.AvgDailySales, cur.AvgDailySales)
		}
	}
}

// Mismo input ⇒ mismo output, byte a byte.
func TestComputeMetrics_Idempotente(t *testing.T) {
	products := []entity.Product{testProduct("p1", 5), testProduct("p2", 0)}
	sales := append(salesSpread("p1", 10), salesSpread("p2", 4)...)
	resellers := map[string]entity.Reseller{
		"rev-1": {ID: "rev-1", Name: "María"},
	}

	first := forecast.ComputeMetrics(products, sales, resellers, testNow, forecast.DefaultTuning())
	second := forecast.ComputeMetrics(products, sales, resellers, testNow, forecast.DefaultTuning())
	require.Equal(t, first, second)
}

// ──────────────────────────────────────────────────────────────────────────────
// Desglose por revendedor
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeMetrics_DesglosePorRevendedor(t *testing.T) {
	sales := []entity.Sale{
		saleDaysAgo("s1", "p1", "rev-a", 1, 100),
		saleDaysAgo("s2", "p1", "rev-a", 2, 100),
		saleDaysAgo("s3", "p1", "rev-a", 3, 100),
		saleDaysAgo("s4", "p1", "rev-b", 4, 80),
	}
	resellers := map[string]entity.Reseller{
		"rev-a": {ID: "rev-a", Name: "Ana"},
		// rev-b no está en el directorio
	}

	metrics := forecast.ComputeMetrics(
		[]entity.Product{testProduct("p1", 50)}, sales, resellers, testNow, forecast.DefaultTuning(),
	)
	require.Len(t, metrics, 1)
	breakdown := metrics[0].ResellerBreakdown
	require.Len(t, breakdown, 2)

	assert.Equal(t, "rev-a", breakdown[0].ResellerID, "mayor volumen primero")
	assert.Equal(t, "Ana", breakdown[0].ResellerName)
	assert.Equal(t, 3, breakdown[0].TotalSold)
	assert.True(t, decimal.NewFromInt(300).Equal(breakdown[0].TotalRevenue))
	assert.InDelta(t, 75.0, breakdown[0].Percentage, 1e-9)

	assert.Equal(t, forecast.ResellerNameUnknown, breakdown[1].ResellerName,
		"id sin entrada en el directorio cae al nombre Unknown")
	assert.InDelta(t, 25.0, breakdown[1].Percentage, 1e-9)

	var sum float64
	for _, b := range breakdown {
		sum += b.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-6, "los porcentajes deben sumar 100")
}

// Fallback por email cuando el revendedor no tiene nombre.
func TestComputeMetrics_NombrePorEmail(t *testing.T) {
	sales := []entity.Sale{saleDaysAgo("s1", "p1", "rev-a", 1, 100)}
	resellers := map[string]entity.Reseller{
		"rev-a": {ID: "rev-a", Email: "ana@example.com"},
	}

	metrics := forecast.ComputeMetrics(
		[]entity.Product{testProduct("p1", 50)}, sales, resellers, testNow, forecast.DefaultTuning(),
	)
	require.Len(t, metrics, 1)
	require.Len(t, metrics[0].ResellerBreakdown, 1)
	assert.Equal(t, "ana@example.com", metrics[0].ResellerBreakdown[0].ResellerName)
}
