package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueapp/estoque-api/internal/application/notification"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

type historyFixture struct {
	uc         *notification.HistoryUseCase
	recordRepo *memRecordRepo
	cache      *memCache
}

func newHistoryFixture() *historyFixture {
	recordRepo := &memRecordRepo{}
	cache := &memCache{}
	return &historyFixture{
		uc:         notification.NewHistoryUseCase(recordRepo, cache, logger.Nop()),
		recordRepo: recordRepo,
		cache:      cache,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkRead / MarkAllRead
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkRead_IDVacio(t *testing.T) {
	f := newHistoryFixture()

	err := f.uc.MarkRead(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.recordRepo.markedRead)
}

// Marcar dos veces la misma notificación no es un error.
func TestMarkRead_Idempotente(t *testing.T) {
	f := newHistoryFixture()
	f.recordRepo.records = []entity.NotificationRecord{
		{ID: "n-1", Kind: entity.KindStockLow, CreatedAt: time.Now()},
	}

	require.NoError(t, f.uc.MarkRead(context.Background(), "n-1"))
	require.NoError(t, f.uc.MarkRead(context.Background(), "n-1"))

	assert.True(t, f.recordRepo.records[0].Read)
	assert.Equal(t, 2, f.cache.invalidCalls, "cada marca descarta el contador en cache")
}

func TestMarkAllRead_InvalidaCache(t *testing.T) {
	f := newHistoryFixture()
	f.recordRepo.records = []entity.NotificationRecord{
		{ID: "n-1", Read: false},
		{ID: "n-2", Read: false},
	}

	require.NoError(t, f.uc.MarkAllRead(context.Background()))

	assert.Equal(t, 1, f.recordRepo.markAllCalls)
	assert.True(t, f.recordRepo.records[0].Read)
	assert.True(t, f.recordRepo.records[1].Read)
	assert.Equal(t, 1, f.cache.invalidCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// CountUnread — cache-aside
// ──────────────────────────────────────────────────────────────────────────────

// Un acierto de cache evita la consulta al repositorio.
func TestCountUnread_AciertoDeCache(t *testing.T) {
	f := newHistoryFixture()
	f.cache.count = 7
	f.cache.has = true
	f.recordRepo.unread = 99 // valor distinto para detectar la fuente

	count, err := f.uc.CountUnread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.Zero(t, f.recordRepo.countCalls, "con acierto de cache no se consulta la BD")
}

// Un fallo de cache consulta la BD y repuebla el contador.
func TestCountUnread_FalloDeCache(t *testing.T) {
	f := newHistoryFixture()
	f.recordRepo.unread = 3

	count, err := f.uc.CountUnread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, 1, f.recordRepo.countCalls)
	assert.Equal(t, []int64{3}, f.cache.setCalls, "el resultado debe repoblar la cache")
}

// Sin cache configurada el contador funciona directo contra la BD.
func TestCountUnread_SinCache(t *testing.T) {
	recordRepo := &memRecordRepo{unread: 5}
	uc := notification.NewHistoryUseCase(recordRepo, nil, logger.Nop())

	count, err := uc.CountUnread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListHistory / GetStatistics / PurgeOlderThan
// ──────────────────────────────────────────────────────────────────────────────

func TestListHistory_SoloNoLeidas(t *testing.T) {
	f := newHistoryFixture()
	f.recordRepo.records = []entity.NotificationRecord{
		{ID: "n-1", Read: true},
		{ID: "n-2", Read: false},
	}

	list, err := f.uc.ListHistory(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "n-2", list[0].ID)

	all, err := f.uc.ListHistory(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetStatistics(t *testing.T) {
	f := newHistoryFixture()
	f.recordRepo.records = []entity.NotificationRecord{
		{ID: "n-1", Kind: entity.KindStockLow, Read: true},
		{ID: "n-2", Kind: entity.KindStockLow, Read: false},
		{ID: "n-3", Kind: entity.KindStockZero, Read: false},
	}

	stats, err := f.uc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Unread)
	assert.Equal(t, int64(2), stats.ByKind[entity.KindStockLow])
	assert.Equal(t, int64(1), stats.ByKind[entity.KindStockZero])
}

func TestPurgeOlderThan_DiasInvalidos(t *testing.T) {
	f := newHistoryFixture()

	assert.ErrorIs(t, f.uc.PurgeOlderThan(context.Background(), 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.PurgeOlderThan(context.Background(), -5), domain.ErrInvalidInput)
	assert.Empty(t, f.recordRepo.purgedDays)
}

func TestPurgeOlderThan_DelegaEnRepositorio(t *testing.T) {
	f := newHistoryFixture()

	require.NoError(t, f.uc.PurgeOlderThan(context.Background(), 30))
	assert.Equal(t, []int{30}, f.recordRepo.purgedDays)
}
