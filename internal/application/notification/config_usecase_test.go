package notification_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueapp/estoque-api/internal/application/notification"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

func newConfigFixture() (*notification.ConfigUseCase, *memConfigRepo) {
	configRepo := newMemConfigRepo()
	return notification.NewConfigUseCase(configRepo, logger.Nop()), configRepo
}

func TestConfigure_CreaActiva(t *testing.T) {
	uc, repo := newConfigFixture()

	cfg, err := uc.Configure(context.Background(), productA, subsectorX, 5, int64Ptr(100))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Active, "configurar deja las notificaciones activas")
	assert.Equal(t, int64(5), cfg.MinStock)
	require.NotNil(t, cfg.MaxStock)
	assert.Equal(t, int64(100), *cfg.MaxStock)

	saved, err := repo.Get(context.Background(), productA, subsectorX)
	require.NoError(t, err)
	require.NotNil(t, saved)
}

// Reconfigurar el mismo par reemplaza los umbrales.
func TestConfigure_ActualizaExistente(t *testing.T) {
	uc, repo := newConfigFixture()

	_, err := uc.Configure(context.Background(), productA, subsectorX, 5, nil)
	require.NoError(t, err)
	_, err = uc.Configure(context.Background(), productA, subsectorX, 8, int64Ptr(50))
	require.NoError(t, err)

	saved, _ := repo.Get(context.Background(), productA, subsectorX)
	assert.Equal(t, int64(8), saved.MinStock)
	require.NotNil(t, saved.MaxStock)
	assert.Equal(t, int64(50), *saved.MaxStock)
}

// Un máximo <= mínimo se acepta; la app lo lista como inconsistente.
func TestConfigure_InconsistenteSeAcepta(t *testing.T) {
	uc, _ := newConfigFixture()

	cfg, err := uc.Configure(context.Background(), productA, subsectorX, 10, int64Ptr(10))
	require.NoError(t, err)
	assert.True(t, cfg.Inconsistent())
}

func TestConfigure_EntradaInvalida(t *testing.T) {
	uc, _ := newConfigFixture()

	_, err := uc.Configure(context.Background(), "", subsectorX, 5, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Configure(context.Background(), productA, "", 5, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Configure(context.Background(), productA, subsectorX, -1, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Configure(context.Background(), productA, subsectorX, 5, int64Ptr(-1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSetActive_Desactiva(t *testing.T) {
	uc, repo := newConfigFixture()
	_, err := uc.Configure(context.Background(), productA, subsectorX, 5, nil)
	require.NoError(t, err)

	require.NoError(t, uc.SetActive(context.Background(), productA, subsectorX, false))

	saved, _ := repo.Get(context.Background(), productA, subsectorX)
	assert.False(t, saved.Active)
}

func TestGet_Inexistente(t *testing.T) {
	uc, _ := newConfigFixture()

	cfg, err := uc.Get(context.Background(), productA, subsectorX)
	require.NoError(t, err)
	assert.Nil(t, cfg, "sin configuración se devuelve nil, no error")
}
