package auth_test

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueapp/estoque-api/internal/application/auth"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/pkg/jwt"
)

const testSubsectorID = "00000000-0000-0000-0000-0000000000f1"

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrDuplicate
	}
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func newAuthFixture() (*auth.AuthUseCase, *memUserRepo) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-pruebas",
		ExpMinutes: 15,
		Issuer:     "estoque-api-test",
	})
	return uc, repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// La contraseña nunca se guarda en claro.
func TestRegister_HasheaPassword(t *testing.T) {
	uc, repo := newAuthFixture()

	user, err := uc.Register(context.Background(), "  maria  ", "clave-segura-123", testSubsectorID, "")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "maria", user.Username, "el username se guarda recortado")
	assert.Equal(t, "operador", user.Role, "sin rol explícito se asigna operador")
	assert.NotEqual(t, "clave-segura-123", user.PasswordHash)

	saved := repo.users["maria"]
	require.NotNil(t, saved)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("clave-segura-123")))
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), "maria", "clave-segura-123", testSubsectorID, "admin")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "maria", "otra-clave-456", testSubsectorID, "operador")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), "", "clave", testSubsectorID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Register(context.Background(), "maria", "", testSubsectorID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Register(context.Background(), "maria", "clave", "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

// El token emitido lleva el subsector del operador para que los handlers no
// consulten la BD.
func TestLogin_EmiteTokenConSubsector(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.Register(context.Background(), "maria", "clave-segura-123", testSubsectorID, "admin")
	require.NoError(t, err)

	token, user, err := uc.Login(context.Background(), "maria", "clave-segura-123")
	require.NoError(t, err)
	require.NotNil(t, user)

	userID, subsectorID, role, err := jwt.Parse("secreto-de-pruebas", token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, testSubsectorID, subsectorID)
	assert.Equal(t, "admin", role)
}

// Usuario inexistente y contraseña incorrecta fallan igual, sin distinguirse.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.Register(context.Background(), "maria", "clave-segura-123", testSubsectorID, "")
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), "maria", "clave-equivocada")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = uc.Login(context.Background(), "no-existe", "clave-segura-123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
