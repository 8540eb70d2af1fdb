package forecast

// Tuning constantes ajustables del motor. Los umbrales de tendencia forman
// una banda de histéresis: entre TrendDownFactor y TrendUpFactor la
// tendencia se reporta estable para no oscilar con muestras pequeñas.
type Tuning struct {
	DemandWindowDays int     // ventana de ventas pagadas usada como señal de demanda
	TrendWindowDays  int     // tamaño de las ventanas reciente/anterior del clasificador
	TrendUpFactor    float64 // reciente > anterior × factor ⇒ increasing
	TrendDownFactor  float64 // reciente < anterior × factor ⇒ decreasing
}

// DefaultTuning valores observados en producción.
func DefaultTuning() Tuning {
	return Tuning{
		DemandWindowDays: 30,
		TrendWindowDays:  7,
		TrendUpFactor:    1.1,
		TrendDownFactor:  0.9,
	}
}
