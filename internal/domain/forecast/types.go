package forecast

import "github.com/shopspring/decimal"

// StockStatus estado de reposición de un SKU.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusReorderNow StockStatus = "reorder_now"
	StatusLowStock   StockStatus = "low_stock"
	StatusHealthy    StockStatus = "healthy"
)

// statusPriority orden de urgencia para el listado (menor = más urgente).
var statusPriority = map[StockStatus]int{
	StatusOutOfStock: 0,
	StatusReorderNow: 1,
	StatusLowStock:   2,
	StatusHealthy:    3,
}

// SalesTrend clasificación de la tendencia de ventas de un SKU.
type SalesTrend string

const (
	TrendIncreasing       SalesTrend = "increasing"
	TrendStable           SalesTrend = "stable"
	TrendDecreasing       SalesTrend = "decreasing"
	TrendNoSales          SalesTrend = "no_sales"
	TrendInsufficientData SalesTrend = "insufficient_data"
)

// NoDepletionSignal valor centinela de DaysUntilStockout cuando no hay
// demanda medible: no es un conteo literal de días.
const NoDepletionSignal = 999

// ResellerShare participación de un revendedor en las ventas de un SKU.
type ResellerShare struct {
	ResellerID   string
	ResellerName string
	TotalSold    int
	TotalRevenue decimal.Decimal
	Percentage   float64 // % sobre unidades vendidas del SKU
}

// ProductMetrics métricas de reposición de un SKU. Derivadas, nunca
// persistidas: cada ciclo de recálculo las regenera por completo.
type ProductMetrics struct {
	ProductID          string
	ProductName        string
	CurrentStock       int
	AvgDailySales      float64
	AvgWeeklySales     float64
	AvgMonthlySales    float64
	LeadTimeDays       int
	FreightCostPerUnit decimal.Decimal
	SafetyStock        int
	ReorderPoint       int
	RecommendedStock   int
	SuggestedPurchase  int
	DaysUntilStockout  int
	TotalPurchaseCost  decimal.Decimal
	Status             StockStatus
	Trend              SalesTrend
	ResellerBreakdown  []ResellerShare
	SupplierName       string
	MinOrderQuantity   int
	SafetyStockDays    int
	ReviewPeriodDays   int
}

// Summary contadores agregados de todo el catálogo.
type Summary struct {
	TotalProducts               int
	ProductsNeedingReorder      int
	ProductsOutOfStock          int
	ProductsLowStock            int
	ProductsHealthy             int
	TotalSuggestedPurchaseValue decimal.Decimal
	TotalFreightCost            decimal.Decimal
}
