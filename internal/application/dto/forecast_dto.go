package dto

import (
	"time"

	"github.com/shopspring/decimal"
	appforecast "github.com/tu-usuario/reseller-forecast/internal/application/forecast"
	"github.com/tu-usuario/reseller-forecast/internal/domain/forecast"
)

// ResellerShareDTO participación de un revendedor en las ventas de un SKU.
type ResellerShareDTO struct {
	ResellerID   string          `json:"reseller_id"`
	ResellerName string          `json:"reseller_name"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Percentage   float64         `json:"percentage"`
}

// ProductMetricsDTO métricas de reposición de un SKU.
type ProductMetricsDTO struct {
	ProductID          string             `json:"product_id"`
	ProductName        string             `json:"product_name"`
	CurrentStock       int                `json:"current_stock"`
	AvgDailySales      float64            `json:"avg_daily_sales"`
	AvgWeeklySales     float64            `json:"avg_weekly_sales"`
	AvgMonthlySales    float64            `json:"avg_monthly_sales"`
	LeadTimeDays       int                `json:"lead_time_days"`
	FreightCostPerUnit decimal.Decimal    `json:"freight_cost_per_unit"`
	SafetyStock        int                `json:"safety_stock"`
	ReorderPoint       int                `json:"reorder_point"`
	RecommendedStock   int                `json:"recommended_stock"`
	SuggestedPurchase  int                `json:"suggested_purchase"`
	DaysUntilStockout  int                `json:"days_until_stockout"` // 999 = sin señal de agotamiento
	TotalPurchaseCost  decimal.Decimal    `json:"total_purchase_cost"`
	Status             string             `json:"status"` // healthy | low_stock | reorder_now | out_of_stock
	Trend              string             `json:"trend"`  // increasing | stable | decreasing | no_sales | insufficient_data
	ResellerBreakdown  []ResellerShareDTO `json:"reseller_breakdown"`
	SupplierName       string             `json:"supplier_name,omitempty"`
	MinOrderQuantity   int                `json:"min_order_quantity"`
	SafetyStockDays    int                `json:"safety_stock_days"`
	ReviewPeriodDays   int                `json:"review_period_days"`
}

// InventorySummaryDTO contadores agregados del catálogo.
type InventorySummaryDTO struct {
	TotalProducts               int             `json:"total_products"`
	ProductsNeedingReorder      int             `json:"products_needing_reorder"`
	ProductsOutOfStock          int             `json:"products_out_of_stock"`
	ProductsLowStock            int             `json:"products_low_stock"`
	ProductsHealthy             int             `json:"products_healthy"`
	TotalSuggestedPurchaseValue decimal.Decimal `json:"total_suggested_purchase_value"`
	TotalFreightCost            decimal.Decimal `json:"total_freight_cost"`
}

// ForecastSnapshotResponse snapshot completo publicado por la fachada.
type ForecastSnapshotResponse struct {
	Metrics    []ProductMetricsDTO `json:"metrics"`
	Summary    InventorySummaryDTO `json:"summary"`
	Loading    bool                `json:"loading"`
	Stale      bool                `json:"stale"`
	Error      *string             `json:"error"` // null = sin error
	ComputedAt *time.Time          `json:"computed_at"`
}

// ForecastSummaryResponse resumen + banderas de ciclo, sin el detalle por SKU.
type ForecastSummaryResponse struct {
	Summary    InventorySummaryDTO `json:"summary"`
	Loading    bool                `json:"loading"`
	Stale      bool                `json:"stale"`
	Error      *string             `json:"error"`
	ComputedAt *time.Time          `json:"computed_at"`
}

// ForecastSnapshotFromDomain mapea el snapshot de la fachada al contrato HTTP.
func ForecastSnapshotFromDomain(snap appforecast.Snapshot) ForecastSnapshotResponse {
	metrics := make([]ProductMetricsDTO, 0, len(snap.Metrics))
	for _, m := range snap.Metrics {
		metrics = append(metrics, productMetricsFromDomain(m))
	}
	return ForecastSnapshotResponse{
		Metrics:    metrics,
		Summary:    summaryFromDomain(snap.Summary),
		Loading:    snap.Loading,
		Stale:      snap.Stale,
		Error:      errorField(snap.Error),
		ComputedAt: computedAtField(snap.ComputedAt),
	}
}

// ForecastSummaryFromDomain mapea solo el resumen.
func ForecastSummaryFromDomain(snap appforecast.Snapshot) ForecastSummaryResponse {
	return ForecastSummaryResponse{
		Summary:    summaryFromDomain(snap.Summary),
		Loading:    snap.Loading,
		Stale:      snap.Stale,
		Error:      errorField(snap.Error),
		ComputedAt: computedAtField(snap.ComputedAt),
	}
}

func productMetricsFromDomain(m forecast.ProductMetrics) ProductMetricsDTO {
	breakdown := make([]ResellerShareDTO, 0, len(m.ResellerBreakdown))
	for _, b := range m.ResellerBreakdown {
		breakdown = append(breakdown, ResellerShareDTO{
			ResellerID:   b.ResellerID,
			ResellerName: b.ResellerName,
			TotalSold:    b.TotalSold,
			TotalRevenue: b.TotalRevenue,
			Percentage:   b.Percentage,
		})
	}
	return ProductMetricsDTO{
		ProductID:          m.ProductID,
		ProductName:        m.ProductName,
		CurrentStock:       m.CurrentStock,
		AvgDailySales:      m.AvgDailySales,
		AvgWeeklySales:     m.AvgWeeklySales,
		AvgMonthlySales:    m.AvgMonthlySales,
		LeadTimeDays:       m.LeadTimeDays,
		FreightCostPerUnit: m.FreightCostPerUnit,
		SafetyStock:        m.SafetyStock,
		ReorderPoint:       m.ReorderPoint,
		RecommendedStock:   m.RecommendedStock,
		SuggestedPurchase:  m.SuggestedPurchase,
		DaysUntilStockout:  m.DaysUntilStockout,
		TotalPurchaseCost:  m.TotalPurchaseCost,
		Status:             string(m.Status),
		Trend:              string(m.Trend),
		ResellerBreakdown:  breakdown,
		SupplierName:       m.SupplierName,
		MinOrderQuantity:   m.MinOrderQuantity,
		SafetyStockDays:    m.SafetyStockDays,
		ReviewPeriodDays:   m.ReviewPeriodDays,
	}
}

func summaryFromDomain(s forecast.Summary) InventorySummaryDTO {
	return InventorySummaryDTO{
		TotalProducts:               s.TotalProducts,
		ProductsNeedingReorder:      s.ProductsNeedingReorder,
		ProductsOutOfStock:          s.ProductsOutOfStock,
		ProductsLowStock:            s.ProductsLowStock,
		ProductsHealthy:             s.ProductsHealthy,
		TotalSuggestedPurchaseValue: s.TotalSuggestedPurchaseValue,
		TotalFreightCost:            s.TotalFreightCost,
	}
}

func errorField(msg string) *string {
	if msg == "" {
		return nil
	}
	return &msg
}

func computedAtField(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
