package forecast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/reseller-forecast/internal/domain"
	"github.com/tu-usuario/reseller-forecast/internal/domain/entity"
	fc "github.com/tu-usuario/reseller-forecast/internal/domain/forecast"
	"github.com/tu-usuario/reseller-forecast/internal/domain/repository"
	"github.com/tu-usuario/reseller-forecast/pkg/logger"
)

// Snapshot estado publicado del motor: la última pareja (métricas, resumen)
// más las banderas de ciclo. Es el único recurso mutable compartido del
// subsistema; se escribe completo una vez por ciclo, nunca parcialmente.
type Snapshot struct {
	Metrics    []fc.ProductMetrics
	Summary    fc.Summary
	Loading    bool
	Stale      bool   // true cuando Error != "" y se retiene el último resultado bueno
	Error      string // vacío = sin error
	ComputedAt time.Time
}

// Service fachada del motor de pronóstico. Carga las tres fuentes en
// paralelo, ejecuta la transformación pura y publica el snapshot de forma
// atómica, bajo disciplina de vuelo único: nunca hay dos recálculos
// concurrentes; los disparos que llegan con un ciclo en vuelo se funden en
// una sola re-ejecución posterior.
type Service struct {
	catalog   repository.CatalogRepository
	sales     repository.SalesLedgerRepository
	resellers repository.ResellerDirectoryRepository
	tuning    fc.Tuning
	log       *logger.Logger

	rootCtx context.Context

	// Guarda de vuelo único (ver el loop de runPending).
	mu       sync.Mutex
	inFlight bool
	pending  bool

	stateMu sync.RWMutex
	state   Snapshot

	// Huella del último snapshot de entrada transformado. Solo la toca el
	// ciclo en vuelo, serializado por la guarda de arriba.
	lastFingerprint string
}

// NewService construye la fachada.
func NewService(
	catalog repository.CatalogRepository,
	sales repository.SalesLedgerRepository,
	resellers repository.ResellerDirectoryRepository,
	tun fc.Tuning,
	log *logger.Logger,
) *Service {
	return &Service{
		catalog:   catalog,
		sales:     sales,
		resellers: resellers,
		tuning:    tun,
		log:       log,
	}
}

// Start fija el contexto raíz de los ciclos y dispara el cálculo inicial.
func (s *Service) Start(ctx context.Context) {
	s.rootCtx = ctx
	s.Refetch()
}

// Refetch agenda un recálculo. Si hay un ciclo en vuelo solo marca pending:
// múltiples disparos colapsan en una única re-ejecución al terminar el
// ciclo actual.
func (s *Service) Refetch() {
	s.mu.Lock()
	if s.inFlight {
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.inFlight = true
	s.mu.Unlock()

	s.setLoading()
	go s.runPending()
}

// Snapshot devuelve una copia consistente del estado publicado.
func (s *Service) Snapshot() Snapshot {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	snap := s.state
	snap.Metrics = make([]fc.ProductMetrics, len(s.state.Metrics))
	copy(snap.Metrics, s.state.Metrics)
	return snap
}

// runPending ejecuta ciclos hasta agotar los disparos pendientes.
func (s *Service) runPending() {
	for {
		s.runCycle()

		s.mu.Lock()
		if s.pending {
			s.pending = false
			s.mu.Unlock()
			s.setLoading()
			continue
		}
		s.inFlight = false
		s.mu.Unlock()
		return
	}
}

// runCycle un ciclo completo: carga concurrente de fuentes, transformación
// pura y publicación atómica. No es cancelable a mitad de vuelo; un disparo
// nuevo solo encola la siguiente ejecución.
func (s *Service) runCycle() {
	ctx := s.rootCtx
	if ctx == nil {
		ctx = context.Background()
	}

	zl := s.log.With().Str("cycle_id", uuid.NewString()).Logger()
	started := time.Now()
	since := started.AddDate(0, 0, -s.tuning.DemandWindowDays)

	var (
		products     []entity.Product
		sales        []entity.Sale
		resellers    []entity.Reseller
		errCatalog   error
		errSales     error
		errResellers error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		products, errCatalog = s.catalog.ListProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		sales, errSales = s.sales.ListPaidSince(ctx, since)
	}()
	go func() {
		defer wg.Done()
		resellers, errResellers = s.resellers.ListResellers(ctx)
	}()
	wg.Wait()

	// Catálogo y ventas son requeridas: cualquiera de las dos aborta el
	// ciclo. El último resultado bueno se retiene como stale.
	if errCatalog != nil || errSales != nil {
		err := errCatalog
		if err == nil {
			err = errSales
		}
		zl.Error().Err(err).Msg("ciclo abortado: fuente requerida no disponible")
		s.publishError(fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err))
		return
	}

	// Directorio opcional: su falla degrada a atribución "Unknown".
	directory := make(map[string]entity.Reseller, len(resellers))
	if errResellers != nil {
		zl.Warn().Err(errResellers).Msg("directorio de revendedores no disponible; se continúa sin atribución")
		resellers = nil
	} else {
		for _, r := range resellers {
			directory[r.ID] = r
		}
	}

	fp := snapshotFingerprint(products, sales, resellers)
	if fp == s.lastFingerprint && s.hasCleanState() {
		zl.Debug().Msg("entradas sin cambios; se omite la transformación")
		s.touch()
		return
	}

	metrics := fc.ComputeMetrics(products, sales, directory, time.Now(), s.tuning)
	summary := fc.Summarize(metrics)
	s.lastFingerprint = fp
	s.publish(metrics, summary)

	zl.Info().
		Int("products", len(products)).
		Int("sales", len(sales)).
		Int("resellers", len(resellers)).
		Dur("elapsed", time.Since(started)).
		Msg("recálculo publicado")
}

func (s *Service) setLoading() {
	s.stateMu.Lock()
	s.state.Loading = true
	s.stateMu.Unlock()
}

func (s *Service) hasCleanState() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state.Error == "" && !s.state.ComputedAt.IsZero()
}

// publish reemplaza el snapshot completo. Los lectores nunca observan una
// mezcla de métricas nuevas con resumen viejo.
func (s *Service) publish(metrics []fc.ProductMetrics, summary fc.Summary) {
	s.stateMu.Lock()
	s.state = Snapshot{
		Metrics:    metrics,
		Summary:    summary,
		ComputedAt: time.Now(),
	}
	s.stateMu.Unlock()
}

// publishError retiene métricas y resumen previos (stale) y expone el error.
func (s *Service) publishError(err error) {
	s.stateMu.Lock()
	s.state.Loading = false
	s.state.Error = err.Error()
	s.state.Stale = !s.state.ComputedAt.IsZero()
	s.stateMu.Unlock()
}

// touch cierra un ciclo sin transformación (entradas idénticas).
func (s *Service) touch() {
	s.stateMu.Lock()
	s.state.Loading = false
	s.state.Error = ""
	s.state.Stale = false
	s.state.ComputedAt = time.Now()
	s.stateMu.Unlock()
}
