package service

import (
	"context"
	"errors"
	"testing"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/config"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("not found")
	}
	u.Ativo = false
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(repo *stubUsuarioRepo, username, senha, perfil string, ativo bool) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	u := &model.Usuario{
		Username:     username,
		Nome:         "Usuário Teste",
		PasswordHash: string(hash),
		Perfil:       perfil,
		Ativo:        ativo,
	}
	_ = repo.Create(context.Background(), u)
	return u
}

func TestLogin_Sucesso(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "maria", "segredo123", "vendedor", true)
	svc := NewAuthService(repo, authTestConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "segredo123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "vendedor", resp.User.Perfil)
}

func TestLogin_SenhaErrada(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "maria", "segredo123", "vendedor", true)
	svc := NewAuthService(repo, authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "errada"})
	assert.ErrorContains(t, err, "credenciais invalidas")
}

func TestLogin_UsuarioInativo(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "maria", "segredo123", "vendedor", false)
	svc := NewAuthService(repo, authTestConfig())

	// Deactivated users get the same generic error as wrong credentials.
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "segredo123"})
	assert.ErrorContains(t, err, "credenciais invalidas")
}

func TestRefresh_TokenValido(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "maria", "segredo123", "vendedor", true)
	svc := NewAuthService(repo, authTestConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "segredo123"})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), authTestConfig())

	_, err := svc.Refresh(context.Background(), "nao-e-um-jwt")
	assert.Error(t, err)
}

func TestCriarUsuario_UsernameDuplicado(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUsuario(repo, "maria", "segredo123", "vendedor", true)
	svc := NewAuthService(repo, authTestConfig())

	_, err := svc.CriarUsuario(context.Background(), dto.CriarUsuarioRequest{
		Username: "maria",
		Nome:     "Outra Maria",
		Password: "outrasenha1",
		Perfil:   "financeiro",
	})
	assert.ErrorContains(t, err, "ja existe")
}
