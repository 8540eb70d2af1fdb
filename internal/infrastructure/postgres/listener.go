package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/reseller-forecast/pkg/logger"
)

// Listener suscriptor del change feed: escucha notificaciones LISTEN/NOTIFY
// de Postgres en los canales de ventas y de catálogo. Cualquier
// notificación, venga de donde venga, dispara un recálculo completo; el
// payload se ignora.
//
// Usa una conexión dedicada (no del pool): LISTEN ata la suscripción a la
// sesión y la conexión queda bloqueada esperando notificaciones.
type Listener struct {
	connString string
	channels   []string
	onChange   func()
	backoff    time.Duration
	log        *logger.Logger
}

// NewListener construye el suscriptor. onChange se invoca por cada
// notificación recibida; debe ser barato y no bloquear (la fachada ya
// coalesce los disparos).
func NewListener(connString string, channels []string, onChange func(), log *logger.Logger) *Listener {
	return &Listener{
		connString: connString,
		channels:   channels,
		onChange:   onChange,
		backoff:    5 * time.Second,
		log:        log,
	}
}

// Run escucha hasta que el contexto se cancele, reconectando con backoff
// fijo ante cualquier error de transporte. Tras cada (re)conexión dispara
// un recálculo: pudieron perderse notificaciones mientras no había sesión.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			l.log.Error().Err(err).Dur("backoff", l.backoff).Msg("change feed desconectado; reintentando")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.backoff):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.connString)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	for _, ch := range l.channels {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			return err
		}
	}
	l.log.Info().Strs("channels", l.channels).Msg("change feed suscrito")

	// Cubre la ventana sin sesión entre conexiones.
	l.onChange()

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.log.Debug().Str("channel", notification.Channel).Msg("notificación de cambio recibida")
		l.onChange()
	}
}
