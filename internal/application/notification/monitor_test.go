package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueapp/estoque-api/internal/application/notification"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

func newMonitorFixture() (*notification.Monitor, *evaluatorFixture) {
	f := newEvaluatorFixture()
	history := notification.NewHistoryUseCase(f.recordRepo, f.cache, logger.Nop())
	monitor := notification.NewMonitor(f.uc, history, time.Hour, 30, logger.Nop())
	return monitor, f
}

// Start y Stop son idempotentes: llamadas reentrantes no duplican timers ni
// bloquean.
func TestMonitor_StartStopIdempotentes(t *testing.T) {
	monitor, _ := newMonitorFixture()

	assert.False(t, monitor.Running())

	monitor.Start()
	assert.True(t, monitor.Running())
	monitor.Start() // segunda llamada: no-op
	assert.True(t, monitor.Running())

	monitor.Stop()
	assert.False(t, monitor.Running())
	monitor.Stop() // segunda llamada: no-op
	assert.False(t, monitor.Running())
}

// El monitor puede reiniciarse tras detenerse.
func TestMonitor_Reinicio(t *testing.T) {
	monitor, _ := newMonitorFixture()

	monitor.Start()
	monitor.Stop()
	monitor.Start()
	assert.True(t, monitor.Running())
	monitor.Stop()
}

// ForceCheck escanea sin necesidad de que el monitor esté en ejecución.
func TestMonitor_ForceCheck(t *testing.T) {
	monitor, f := newMonitorFixture()
	f.configRepo.seed(productA, subsectorX, 5, nil, true)
	f.configRepo.withStock = []entity.ConfigWithStock{
		{NotificationConfig: *f.configRepo.configs[cfgKey(productA, subsectorX)], CurrentQuantity: 2},
	}

	processed, err := monitor.ForceCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	require.Len(t, f.recordRepo.records, 1)
	assert.Equal(t, entity.KindStockLow, f.recordRepo.records[0].Kind)
}
