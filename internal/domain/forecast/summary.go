package forecast

import "github.com/shopspring/decimal"

// Summarize reduce la lista de métricas a los contadores de catálogo.
// Función total: con lista vacía todos los contadores quedan en cero.
func Summarize(metrics []ProductMetrics) Summary {
	s := Summary{
		TotalProducts:               len(metrics),
		TotalSuggestedPurchaseValue: decimal.Zero,
		TotalFreightCost:            decimal.Zero,
	}
	for _, m := range metrics {
		switch m.Status {
		case StatusOutOfStock:
			s.ProductsOutOfStock++
		case StatusReorderNow:
			s.ProductsNeedingReorder++
		case StatusLowStock:
			s.ProductsLowStock++
		case StatusHealthy:
			s.ProductsHealthy++
		}
		s.TotalSuggestedPurchaseValue = s.TotalSuggestedPurchaseValue.Add(m.TotalPurchaseCost)
		s.TotalFreightCost = s.TotalFreightCost.Add(
			decimal.NewFromInt(int64(m.SuggestedPurchase)).Mul(m.FreightCostPerUnit),
		)
	}
	return s
}
