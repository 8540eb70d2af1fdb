package entity

import "github.com/shopspring/decimal"

// ReorderDefaults tabla única de valores por defecto para los parámetros de
// reposición. Se aplica una sola vez al leer el catálogo (ver Normalize y el
// COALESCE del adaptador Postgres); el motor de cálculo nunca vuelve a
// resolver ausencias.
var ReorderDefaults = ReorderParams{
	LeadTimeDays:       7,
	SafetyStockDays:    7,
	ReviewPeriodDays:   7,
	FreightCostPerUnit: decimal.Zero,
	MinOrderQuantity:   1,
}

// ReorderParams parámetros de reposición por producto.
type ReorderParams struct {
	LeadTimeDays       int             // días entre emitir la orden de compra y recibir stock
	SafetyStockDays    int             // días de demanda cubiertos por el stock de seguridad
	ReviewPeriodDays   int             // intervalo entre decisiones de reposición
	FreightCostPerUnit decimal.Decimal // flete por unidad
	MinOrderQuantity   int             // tamaño mínimo de lote de compra
	SupplierName       string
}

// Product SKU del catálogo del revendedor. Snapshot de solo lectura: este
// servicio nunca lo muta.
type Product struct {
	ID      string
	Name    string
	Price   decimal.Decimal // precio de venta unitario
	Stock   int
	Reorder ReorderParams
}

// Normalize reemplaza parámetros ausentes o inválidos por ReorderDefaults.
// Un MinOrderQuantity menor a 1 rompería el redondeo por lote, por eso se
// corrige aquí y no en el cálculo.
func (p *Product) Normalize() {
	if p.Reorder.LeadTimeDays <= 0 {
		p.Reorder.LeadTimeDays = ReorderDefaults.LeadTimeDays
	}
	if p.Reorder.SafetyStockDays <= 0 {
		p.Reorder.SafetyStockDays = ReorderDefaults.SafetyStockDays
	}
	if p.Reorder.ReviewPeriodDays <= 0 {
		p.Reorder.ReviewPeriodDays = ReorderDefaults.ReviewPeriodDays
	}
	if p.Reorder.FreightCostPerUnit.IsNegative() {
		p.Reorder.FreightCostPerUnit = ReorderDefaults.FreightCostPerUnit
	}
	if p.Reorder.MinOrderQuantity < 1 {
		p.Reorder.MinOrderQuantity = ReorderDefaults.MinOrderQuantity
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
}
