package portalauthhandler

import (
	"testing"

	"employee-portal-backend/config"
	portaluserstore "employee-portal-backend/lib/portal-users/store"
	"employee-portal-backend/models"
	authapimodels "employee-portal-backend/models/api/auth"
	dbmodels "employee-portal-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandler(t *testing.T) (*impl, *gorm.DB) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 3600
	config.Conf.Auth.JWTRefreshExpireInSec = 86400

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&dbmodels.PortalUser{}))
	return newInstance(gdb), gdb
}

func provision(t *testing.T, gdb *gorm.DB) dbmodels.PortalUser {
	user := dbmodels.PortalUser{Email: "anna@example.com", FullName: "Anna", Role: models.EmployeeRole}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

func TestCreateAuthUser(t *testing.T) {
	t.Run("sets the password once", func(t *testing.T) {
		handler, gdb := setupHandler(t)
		provision(t, gdb)

		resp, err := handler.CreateAuthUser(authapimodels.CreateAuthUserRequest{
			Email: "anna@example.com", Password: "secret123",
		})
		require.NoError(t, err)
		require.NotEmpty(t, resp.UID)

		user, err := portaluserstore.NewInstance(gdb).GetByID(resp.UID)
		require.NoError(t, err)
		require.NotEmpty(t, user.Password)
		require.NotEqual(t, "secret123", user.Password) // stored hashed
		require.True(t, user.FirstLoginDone)

		_, err = handler.CreateAuthUser(authapimodels.CreateAuthUserRequest{
			Email: "anna@example.com", Password: "another",
		})
		require.Equal(t, models.CodeAlreadyExists, models.AsAPIError(err).Code)
	})

	t.Run("self-registration creates an employee account", func(t *testing.T) {
		handler, gdb := setupHandler(t)

		resp, err := handler.CreateAuthUser(authapimodels.CreateAuthUserRequest{
			Email: "dmitri@example.com", Password: "secret123", FullName: "Dmitri",
		})
		require.NoError(t, err)
		require.NotEmpty(t, resp.UID)

		user, err := portaluserstore.NewInstance(gdb).GetByID(resp.UID)
		require.NoError(t, err)
		require.Equal(t, models.EmployeeRole, user.Role)
		require.Equal(t, "Dmitri", user.FullName)
		require.NotEmpty(t, user.Password)
		require.True(t, user.FirstLoginDone)

		login, err := handler.Login(authapimodels.LoginRequest{Email: "dmitri@example.com", Password: "secret123"})
		require.NoError(t, err)
		require.NotEmpty(t, login.AccessToken)
	})

	t.Run("self-registration needs a full name", func(t *testing.T) {
		handler, _ := setupHandler(t)

		_, err := handler.CreateAuthUser(authapimodels.CreateAuthUserRequest{
			Email: "ghost@example.com", Password: "secret123",
		})
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("password policy", func(t *testing.T) {
		handler, gdb := setupHandler(t)
		provision(t, gdb)

		_, err := handler.CreateAuthUser(authapimodels.CreateAuthUserRequest{
			Email: "anna@example.com", Password: "short",
		})
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})
}

func TestLogin(t *testing.T) {
	handler, gdb := setupHandler(t)
	provision(t, gdb)
	_, err := handler.CreateAuthUser(authapimodels.CreateAuthUserRequest{
		Email: "anna@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := handler.Login(authapimodels.LoginRequest{Email: "Anna@Example.com", Password: "secret123"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)
		require.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := handler.Login(authapimodels.LoginRequest{Email: "anna@example.com", Password: "wrong"})
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := handler.Login(authapimodels.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})

	t.Run("registration not finished", func(t *testing.T) {
		user := dbmodels.PortalUser{Email: "boris@example.com", FullName: "Boris", Role: models.EmployeeRole}
		require.NoError(t, gdb.Create(&user).Error)

		_, err := handler.Login(authapimodels.LoginRequest{Email: "boris@example.com", Password: "secret123"})
		require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
	})
}

func TestRefreshToken(t *testing.T) {
	handler, gdb := setupHandler(t)
	provision(t, gdb)
	_, err := handler.CreateAuthUser(authapimodels.CreateAuthUserRequest{
		Email: "anna@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	login, err := handler.Login(authapimodels.LoginRequest{Email: "anna@example.com", Password: "secret123"})
	require.NoError(t, err)

	resp, err := handler.RefreshToken(login.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	_, err = handler.RefreshToken("not-a-token")
	require.Equal(t, models.CodeInvalidArgument, models.AsAPIError(err).Code)
}

func TestMe(t *testing.T) {
	handler, gdb := setupHandler(t)
	user := provision(t, gdb)

	view, err := handler.Me(user.ID)
	require.NoError(t, err)
	require.Equal(t, "anna@example.com", view.Email)

	_, err = handler.Me("missing")
	require.Equal(t, models.CodeNotFound, models.AsAPIError(err).Code)
}
