package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgtransporte/suministros-api/internal/application/auth"
	"github.com/dgtransporte/suministros-api/internal/application/dto"
	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	"github.com/dgtransporte/suministros-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User // por email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := f.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	c := *user
	f.users[user.Email] = &c
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func newAuthUseCase() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "suministros-api",
	})
	return uc, repo
}

func TestRegisterUser_HasheaPassword(t *testing.T) {
	uc, repo := newAuthUseCase()

	user, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "ana@transporte.gob",
		Password: "clave123",
		Name:     "Ana",
		Role:     entity.RoleAlmacenero,
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@transporte.gob", user.Email)
	assert.Equal(t, entity.RoleAlmacenero, user.Role)

	saved := repo.users["ana@transporte.gob"]
	require.NotNil(t, saved)
	assert.NotEqual(t, "clave123", saved.PasswordHash, "el password nunca se guarda en claro")
	assert.Equal(t, "active", saved.Status)
}

func TestRegisterUser_RolPorDefecto(t *testing.T) {
	uc, _ := newAuthUseCase()

	user, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "ana@transporte.gob",
		Password: "clave123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleEmpleado, user.Role)
	assert.Equal(t, "ana@transporte.gob", user.Name, "sin nombre, usa el email")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@transporte.gob", Password: "clave123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@transporte.gob", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	registered, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "ana@transporte.gob",
		Password: "clave123",
		Role:     entity.RoleSupervisor,
	})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@transporte.gob", Password: "clave123"})
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleSupervisor, role)
	assert.Equal(t, "ana@transporte.gob", resp.User.Email)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@transporte.gob", Password: "clave123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@transporte.gob", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthUseCase()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@transporte.gob", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioDeshabilitado(t *testing.T) {
	uc, repo := newAuthUseCase()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@transporte.gob", Password: "clave123"})
	require.NoError(t, err)
	repo.users["ana@transporte.gob"].Status = "disabled"

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@transporte.gob", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
