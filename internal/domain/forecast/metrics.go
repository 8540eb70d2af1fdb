package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
)

// ResellerNameUnknown nombre mostrado cuando el directorio de revendedores
// no resuelve un id (fuente opcional degradada o id huérfano).
const ResellerNameUnknown = "Unknown"

// ComputeMetrics calcula las métricas de reposición de cada SKU del catálogo
// a partir de las ventas pagadas de la ventana de demanda. Función pura: sin
// I/O, sin estado entre invocaciones; el mismo input (incluido now) produce
// siempre el mismo output.
//
// El resultado se ordena por prioridad de decisión: primero por urgencia del
// estado (out_of_stock → reorder_now → low_stock → healthy) y dentro de cada
// estado por demanda diaria descendente.
func ComputeMetrics(
	products []entity.Product,
	sales []entity.Sale,
	resellers map[string]entity.Reseller,
	now time.Time,
	tun Tuning,
) []ProductMetrics {
	// Señal de demanda: solo ventas pagadas dentro de la ventana. El
	// adaptador SQL ya filtra, pero el motor no depende de ello.
	windowCut := now.AddDate(0, 0, -tun.DemandWindowDays)
	salesByProduct := make(map[string][]entity.Sale, len(products))
	for _, s := range sales {
		if !s.Paid || s.CreatedAt.Before(windowCut) {
			continue
		}
		salesByProduct[s.ProductID] = append(salesByProduct[s.ProductID], s)
	}

	metrics := make([]ProductMetrics, 0, len(products))
	for _, p := range products {
		metrics = append(metrics, computeProduct(p, salesByProduct[p.ID], resellers, now, tun))
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		a, b := metrics[i], metrics[j]
		if statusPriority[a.Status] != statusPriority[b.Status] {
			return statusPriority[a.Status] < statusPriority[b.Status]
		}
		return a.AvgDailySales > b.AvgDailySales
	})
	return metrics
}

func computeProduct(
	p entity.Product,
	sales []entity.Sale,
	resellers map[string]entity.Reseller,
	now time.Time,
	tun Tuning,
) ProductMetrics {
	totalSold := len(sales)

	// Días distintos con al menos una venta (granularidad de fecha).
	days := make(map[string]struct{}, totalSold)
	for _, s := range sales {
		days[s.CreatedAt.Format("2006-01-02")] = struct{}{}
	}
	daysWithData := len(days)

	var avgDaily float64
	if daysWithData > 0 {
		avgDaily = float64(totalSold) / float64(daysWithData)
	}

	r := p.Reorder
	safetyStock := int(math.Ceil(avgDaily * float64(r.SafetyStockDays)))
	reorderPoint := int(math.Ceil(avgDaily*float64(r.LeadTimeDays) + float64(safetyStock)))
	recommendedStock := int(math.Ceil(avgDaily*float64(r.LeadTimeDays+r.ReviewPeriodDays) + float64(safetyStock)))

	rawPurchase := recommendedStock - p.Stock
	if rawPurchase < 0 {
		rawPurchase = 0
	}
	// Redondeo al lote: nunca se sugiere una compra parcial.
	suggested := int(math.Ceil(float64(rawPurchase)/float64(r.MinOrderQuantity))) * r.MinOrderQuantity

	daysUntilStockout := NoDepletionSignal
	if avgDaily > 0 {
		daysUntilStockout = int(math.Floor(float64(p.Stock) / avgDaily))
	}

	totalCost := decimal.NewFromInt(int64(suggested)).Mul(p.Price.Add(r.FreightCostPerUnit))

	// Orden estricto: stock cero domina cualquier otra regla.
	var status StockStatus
	switch {
	case p.Stock == 0:
		status = StatusOutOfStock
	case p.Stock <= reorderPoint:
		status = StatusReorderNow
	case daysUntilStockout <= r.LeadTimeDays+7:
		status = StatusLowStock
	default:
		status = StatusHealthy
	}

	return ProductMetrics{
		ProductID:          p.ID,
		ProductName:        p.Name,
		CurrentStock:       p.Stock,
		AvgDailySales:      avgDaily,
		AvgWeeklySales:     avgDaily * 7,
		AvgMonthlySales:    avgDaily * 30,
		LeadTimeDays:       r.LeadTimeDays,
		FreightCostPerUnit: r.FreightCostPerUnit,
		SafetyStock:        safetyStock,
		ReorderPoint:       reorderPoint,
		RecommendedStock:   recommendedStock,
		SuggestedPurchase:  suggested,
		DaysUntilStockout:  daysUntilStockout,
		TotalPurchaseCost:  totalCost,
		Status:             status,
		Trend:              classifyTrend(sales, daysWithData, now, tun),
		ResellerBreakdown:  breakdownByReseller(sales, totalSold, resellers),
		SupplierName:       r.SupplierName,
		MinOrderQuantity:   r.MinOrderQuantity,
		SafetyStockDays:    r.SafetyStockDays,
		ReviewPeriodDays:   r.ReviewPeriodDays,
	}
}

// breakdownByReseller agrupa las ventas del SKU por revendedor, sumando
// unidades e ingresos, ordenado por unidades descendente.
func breakdownByReseller(
	sales []entity.Sale,
	totalSold int,
	resellers map[string]entity.Reseller,
) []ResellerShare {
	if totalSold == 0 {
		return []ResellerShare{}
	}

	byReseller := make(map[string]*ResellerShare)
	for _, s := range sales {
		share, ok := byReseller[s.ResellerID]
		if !ok {
			share = &ResellerShare{ResellerID: s.ResellerID, TotalRevenue: decimal.Zero}
			byReseller[s.ResellerID] = share
		}
		share.TotalSold++
		share.TotalRevenue = share.TotalRevenue.Add(s.TotalAmount)
	}

	breakdown := make([]ResellerShare, 0, len(byReseller))
	for id, share := range byReseller {
		name := ResellerNameUnknown
		if r, ok := resellers[id]; ok && r.DisplayName() != "" {
			name = r.DisplayName()
		}
		share.ResellerName = name
		share.Percentage = float64(share.TotalSold) / float64(totalSold) * 100
		breakdown = append(breakdown, *share)
	}

	// Orden por id primero para que el resultado no dependa de la
	// iteración del map; luego estable por unidades descendente.
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].ResellerID < breakdown[j].ResellerID
	})
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].TotalSold > breakdown[j].TotalSold
	})
	return breakdown
}
