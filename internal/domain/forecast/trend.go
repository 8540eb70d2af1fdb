package forecast

import (
	"time"

	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
)

// classifyTrend compara las ventas de la última ventana (días 1–7 hacia
// atrás desde now) contra la ventana anterior (días 8–14). Las ventanas se
// cortan por aritmética de fechas, no por alineación de calendario.
//
// no_sales se evalúa antes que insufficient_data: un SKU sin historial
// alguno nunca debe reportarse como meramente pobre en datos.
func classifyTrend(sales []entity.Sale, daysWithData int, now time.Time, tun Tuning) SalesTrend {
	if len(sales) == 0 {
		return TrendNoSales
	}
	if daysWithData < tun.TrendWindowDays {
		return TrendInsufficientData
	}

	recentCut := now.AddDate(0, 0, -tun.TrendWindowDays)
	olderCut := now.AddDate(0, 0, -2*tun.TrendWindowDays)

	var recent, older int
	for _, s := range sales {
		switch {
		case !s.CreatedAt.Before(recentCut):
			recent++
		case !s.CreatedAt.Before(olderCut):
			older++
		}
	}

	switch {
	case float64(recent) > float64(older)*tun.TrendUpFactor:
		return TrendIncreasing
	case float64(recent) < float64(older)*tun.TrendDownFactor:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
