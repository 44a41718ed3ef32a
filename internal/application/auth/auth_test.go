package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
	"github.com/jhoicas/Gestion-api/pkg/config"
	"github.com/jhoicas/Gestion-api/pkg/jwt"
)

const secret = "test-secret"

var seed = config.SeedConfig{AdminCode: "1234", EmployeeCode: "5678", RecoveryAnswer: "Sallen"}

type env struct {
	st    *storage.Stores
	auth  *auth.AuthUseCase
	users *auth.UserUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	st, err := storage.Open(ctx, storage.NewMemoryKV(), nil)
	require.NoError(t, err)
	created, err := auth.Bootstrap(ctx, st.Users, st.UserCodes, st.Settings, seed, nil)
	require.NoError(t, err)
	require.True(t, created)
	return &env{
		st:    st,
		auth:  auth.NewAuthUseCase(st.Users, st.UserCodes, st.Sessions, settings.NewUseCase(st.Settings), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "gestion"}, nil),
		users: auth.NewUserUseCase(st.Users, st.UserCodes, st.Sessions),
	}
}

func TestBootstrap_SoloLaPrimeraVez(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	again, err := auth.Bootstrap(ctx, e.st.Users, e.st.UserCodes, e.st.Settings, seed, nil)
	require.NoError(t, err)
	assert.False(t, again)

	list, err := e.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.RoleAdmin, list[0].Role)
	assert.Equal(t, entity.RoleEmployee, list[1].Role)

	hash, err := e.st.UserCodes.GetHash(ctx, list[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash, "el código se guarda hasheado")
}

func TestLogin_NombreSinMayusculas(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	resp, err := e.auth.Login(ctx, dto.LoginRequest{Name: "administrateur", Code: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "Administrateur", resp.User.Name)

	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, resp.User.ID, claims.UserID)

	session, err := e.st.Sessions.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, resp.User.ID, session.User.ID)
}

func TestLogin_CodigoIncorrectoNoAbreSesion(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.auth.Login(ctx, dto.LoginRequest{Name: "Administrateur", Code: "0000"})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
	_, err = e.auth.Login(ctx, dto.LoginRequest{Name: "Inconnu", Code: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	session, err := e.st.Sessions.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSwitchYLogout(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, err := e.auth.Login(ctx, dto.LoginRequest{Name: "Administrateur", Code: "1234"})
	require.NoError(t, err)

	list, _ := e.users.List(ctx)
	employee := list[1]
	_, err = e.auth.Switch(ctx, dto.SwitchUserRequest{UserID: employee.ID, Code: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	resp, err := e.auth.Switch(ctx, dto.SwitchUserRequest{UserID: employee.ID, Code: "5678"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, resp.User.Role)

	require.NoError(t, e.auth.Logout(ctx))
	session, _ := e.st.Sessions.Current(ctx)
	assert.Nil(t, session)
}

func TestRecover_RestableceCodigoDelAdministrador(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	err := e.auth.Recover(ctx, dto.RecoverRequest{Answer: "autre", NewCode: "9999"})
	assert.ErrorIs(t, err, domain.ErrInvalidRecoveryAnswer)

	require.NoError(t, e.auth.Recover(ctx, dto.RecoverRequest{Answer: "  SALLEN ", NewCode: "9999"}))
	_, err = e.auth.Login(ctx, dto.LoginRequest{Name: "Administrateur", Code: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
	_, err = e.auth.Login(ctx, dto.LoginRequest{Name: "Administrateur", Code: "9999"})
	assert.NoError(t, err)
}

func TestUsers_CrearValidaYUnico(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.users.Create(ctx, dto.CreateUserRequest{Name: "Fatou", Role: entity.RoleEmployee, Code: "12a4"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.users.Create(ctx, dto.CreateUserRequest{Name: "Fatou", Role: "owner", Code: "1212"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.users.Create(ctx, dto.CreateUserRequest{Name: "employé 1", Role: entity.RoleEmployee, Code: "1212"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	fatou, err := e.users.Create(ctx, dto.CreateUserRequest{Name: "Fatou", Role: entity.RoleEmployee, Code: "1212"})
	require.NoError(t, err)
	_, err = e.auth.Login(ctx, dto.LoginRequest{Name: "fatou", Code: "1212"})
	require.NoError(t, err)

	require.NoError(t, e.users.ChangeCode(ctx, fatou.ID, "343434"))
	_, err = e.auth.Login(ctx, dto.LoginRequest{Name: "fatou", Code: "343434"})
	require.NoError(t, err)
}

func TestUsers_DeleteReglas(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	list, _ := e.users.List(ctx)
	admin, employee := list[0], list[1]

	assert.ErrorIs(t, e.users.Delete(ctx, admin.ID, admin.ID), domain.ErrInvalidInput)
	assert.ErrorIs(t, e.users.Delete(ctx, employee.ID, admin.ID), domain.ErrLastAdmin)

	role := entity.RoleEmployee
	_, err := e.users.Update(ctx, admin.ID, dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrLastAdmin)

	require.NoError(t, e.users.Delete(ctx, admin.ID, employee.ID))
	hash, _ := e.st.UserCodes.GetHash(ctx, employee.ID)
	assert.Empty(t, hash)
}

func TestUsers_DegradacionesConcurrentesDejanUnAdministrador(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		e := newEnv(t)
		list, _ := e.users.List(ctx)
		first := list[0]
		second, err := e.users.Create(ctx, dto.CreateUserRequest{Name: "Moussa", Role: entity.RoleAdmin, Code: "4321"})
		require.NoError(t, err)

		role := entity.RoleEmployee
		var (
			wg   sync.WaitGroup
			errs [2]error
		)
		for j, id := range []string{first.ID, second.ID} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[j] = e.users.Update(ctx, id, dto.UpdateUserRequest{Role: &role})
			}()
		}
		wg.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrLastAdmin)
				failed++
			}
		}
		assert.Equal(t, 1, failed)
		assert.Equal(t, 1, countAdmins(t, e))
	}
}

func TestUsers_BorradosConcurrentesDejanUnAdministrador(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		e := newEnv(t)
		list, _ := e.users.List(ctx)
		first, employee := list[0], list[1]
		second, err := e.users.Create(ctx, dto.CreateUserRequest{Name: "Moussa", Role: entity.RoleAdmin, Code: "4321"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for _, id := range []string{first.ID, second.ID} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = e.users.Delete(ctx, employee.ID, id)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, countAdmins(t, e))
	}
}

func countAdmins(t *testing.T, e *env) int {
	t.Helper()
	list, err := e.users.List(context.Background())
	require.NoError(t, err)
	n := 0
	for _, u := range list {
		if u.Role == entity.RoleAdmin {
			n++
		}
	}
	return n
}

func TestUsers_RenombrarANombreExistente(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	list, _ := e.users.List(ctx)

	taken := "ADMINISTRATEUR"
	_, err := e.users.Update(ctx, list[1].ID, dto.UpdateUserRequest{Name: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	same := "administrateur"
	got, err := e.users.Update(ctx, list[0].ID, dto.UpdateUserRequest{Name: &same})
	require.NoError(t, err)
	assert.Equal(t, "administrateur", got.Name)
}

func TestUsers_UpdateRefrescaLaSesion(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	resp, err := e.auth.Login(ctx, dto.LoginRequest{Name: "Administrateur", Code: "1234"})
	require.NoError(t, err)

	name := "Patron"
	_, err = e.users.Update(ctx, resp.User.ID, dto.UpdateUserRequest{Name: &name})
	require.NoError(t, err)

	session, _ := e.st.Sessions.Current(ctx)
	require.NotNil(t, session)
	assert.Equal(t, "Patron", session.User.Name)
}
