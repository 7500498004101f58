package notification

import (
	"context"
	"sync"
	"time"

	"github.com/estoqueapp/estoque-api/pkg/logger"
)

// Monitor tareas de fondo del subsistema de notificaciones: escaneo
// periódico de umbrales y depuración diaria del historial a medianoche local.
// Se construye una vez en el arranque y se inyecta; no hay estado global.
// Start y Stop son idempotentes: llamadas reentrantes no duplican timers.
type Monitor struct {
	evaluator *EvaluatorUseCase
	history   *HistoryUseCase

	checkInterval time.Duration
	retentionDays int
	log           *logger.Logger

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewMonitor construye el monitor. checkInterval <= 0 usa 5 minutos;
// retentionDays <= 0 usa 30 días.
func NewMonitor(evaluator *EvaluatorUseCase, history *HistoryUseCase, checkInterval time.Duration, retentionDays int, log *logger.Logger) *Monitor {
	if checkInterval <= 0 {
		checkInterval = 5 * time.Minute
	}
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Monitor{
		evaluator:     evaluator,
		history:       history,
		checkInterval: checkInterval,
		retentionDays: retentionDays,
		log:           log,
	}
}

// Start lanza las dos tareas repetitivas. Si ya está en ejecución es un no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		m.log.Debug().Msg("monitor de notificaciones ya en ejecución")
		return
	}
	m.running = true
	m.stop = make(chan struct{})

	m.wg.Add(2)
	go m.scanLoop(m.stop)
	go m.cleanupLoop(m.stop)

	m.log.Info().
		Dur("check_interval", m.checkInterval).
		Int("retention_days", m.retentionDays).
		Msg("monitor de notificaciones iniciado")
}

// Stop detiene ambas tareas como unidad y espera a que terminen. Si no está
// en ejecución es un no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stop)
	m.mu.Unlock()

	m.wg.Wait()
	m.log.Info().Msg("monitor de notificaciones detenido")
}

// Running indica si el monitor está activo.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// ForceCheck dispara un escaneo inmediato (acción "verificar ahora" del
// usuario) y devuelve cuántas configuraciones se procesaron.
func (m *Monitor) ForceCheck(ctx context.Context) (int, error) {
	return m.evaluator.EvaluateAll(ctx)
}

// scanLoop escaneo inicial y luego uno por tick.
func (m *Monitor) scanLoop(stop <-chan struct{}) {
	defer m.wg.Done()

	m.runScan()

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.runScan()
		}
	}
}

func (m *Monitor) runScan() {
	if _, err := m.evaluator.EvaluateAll(context.Background()); err != nil {
		m.log.Error().Err(err).Msg("escaneo de umbrales fallido")
	}
}

// cleanupLoop espera hasta la próxima medianoche local y depura el historial
// una vez al día.
func (m *Monitor) cleanupLoop(stop <-chan struct{}) {
	defer m.wg.Done()

	timer := time.NewTimer(untilNextMidnight(time.Now()))
	defer timer.Stop()
	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			m.runCleanup()
			timer.Reset(untilNextMidnight(time.Now()))
		}
	}
}

func (m *Monitor) runCleanup() {
	if err := m.history.PurgeOlderThan(context.Background(), m.retentionDays); err != nil {
		m.log.Error().Err(err).Msg("depuración del historial fallida")
	}
}

// untilNextMidnight duración hasta las 00:00 locales siguientes.
func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
