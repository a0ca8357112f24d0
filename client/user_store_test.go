package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactivities/reactivities-go/types"
)

func TestLoginSuccessSignsInAndNavigates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /account/login", func(w http.ResponseWriter, r *http.Request) {
		var values types.UserFormValues
		require.NoError(t, jsonDecode(r, &values))
		assert.Equal(t, "bob@test.com", values.Email)

		writeJSON(w, http.StatusOK, types.User{
			Username:    "bob",
			DisplayName: "Bob",
			Token:       "jwt-abc",
		})
	})
	env := newTestEnv(t, mux)

	// A login form typically lives in the modal; success must close it.
	env.store.ModalStore.Open("login-form", ModalOptions{})

	err := env.store.UserStore.Login(context.Background(), types.UserFormValues{
		Email:    "bob@test.com",
		Password: "Pa$$w0rd",
	})
	require.NoError(t, err)

	user := env.store.UserStore.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "bob", user.Username)

	assert.Equal(t, "jwt-abc", env.store.CommonStore.Token())
	assert.Equal(t, "jwt-abc", env.storage.Read())
	assert.False(t, env.store.ModalStore.IsOpen())
	assert.Equal(t, "/activities", env.navigator.last())
	assert.False(t, env.store.UserStore.IsLoading())
	assert.Zero(t, env.notifier.count())
}

func TestLoginFailureNotifiesAndReturnsNormalizedError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /account/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, types.ApiError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Invalid credentials",
		})
	})
	env := newTestEnv(t, mux)

	err := env.store.UserStore.Login(context.Background(), types.UserFormValues{
		Email:    "bob@test.com",
		Password: "nope",
	})
	require.Error(t, err)

	var serverErr *ServerErrorResponse
	require.ErrorAs(t, err, &serverErr)
	assert.True(t, serverErr.IsUnauthorized())

	// 401 handling clears the session, even though none was established.
	assert.Nil(t, env.store.UserStore.CurrentUser())
	assert.Empty(t, env.store.CommonStore.Token())
	assert.Equal(t, "/", env.navigator.last())
	assert.Equal(t, 1, env.notifier.count())
	assert.False(t, env.store.UserStore.IsLoading())
}

func TestRegisterSuccessSignsIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /account/register", func(w http.ResponseWriter, r *http.Request) {
		var values types.UserFormValues
		require.NoError(t, jsonDecode(r, &values))
		assert.Equal(t, "jane", values.Username)

		writeJSON(w, http.StatusOK, types.User{
			Username:    values.Username,
			DisplayName: values.DisplayName,
			Token:       "jwt-new",
		})
	})
	env := newTestEnv(t, mux)

	err := env.store.UserStore.Register(context.Background(), types.UserFormValues{
		Email:       "jane@test.com",
		Password:    "Pa$$w0rd",
		Username:    "jane",
		DisplayName: "Jane",
	})
	require.NoError(t, err)

	assert.True(t, env.store.UserStore.IsLoggedIn())
	assert.Equal(t, "jwt-new", env.storage.Read())
	assert.Equal(t, "/activities", env.navigator.last())
}

func TestRegisterConflictNotifies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /account/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, types.ApiError{
			StatusCode: http.StatusConflict,
			Message:    "Username is already taken",
		})
	})
	env := newTestEnv(t, mux)

	err := env.store.UserStore.Register(context.Background(), types.UserFormValues{
		Email:    "jane@test.com",
		Password: "Pa$$w0rd",
		Username: "jane",
	})
	require.Error(t, err)

	var serverErr *ServerErrorResponse
	require.ErrorAs(t, err, &serverErr)
	assert.True(t, serverErr.IsConflict())
	assert.False(t, env.store.UserStore.IsLoggedIn())
	assert.Equal(t, 1, env.notifier.count())
}

func TestLoadUserRefreshesTokenFromResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /account", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, types.User{
			Username:    "bob",
			DisplayName: "Bob",
			Token:       "refreshed-token",
		})
	})
	env := newTestEnv(t, mux)
	env.store.CommonStore.SetToken("stored-token")

	require.NoError(t, env.store.UserStore.LoadUser(context.Background()))

	assert.True(t, env.store.UserStore.IsLoggedIn())
	assert.Equal(t, "refreshed-token", env.store.CommonStore.Token())
	assert.Equal(t, "refreshed-token", env.storage.Read())
}

func TestLoadUserFailureLogsOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /account", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, types.ApiError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Invalid or expired token",
		})
	})
	env := newTestEnv(t, mux)
	env.store.CommonStore.SetToken("expired-token")

	err := env.store.UserStore.LoadUser(context.Background())
	require.Error(t, err)

	assert.False(t, env.store.UserStore.IsLoggedIn())
	assert.Empty(t, env.store.CommonStore.Token())
	assert.Empty(t, env.storage.Read())
	assert.Equal(t, "/", env.navigator.last())
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	env.store.CommonStore.SetToken("some-token")

	env.store.UserStore.Logout()
	env.store.UserStore.Logout()

	assert.False(t, env.store.UserStore.IsLoggedIn())
	assert.Empty(t, env.store.CommonStore.Token())
	assert.Empty(t, env.storage.Read())
	assert.Equal(t, "/", env.navigator.last())
}

func TestInitializeLoadsUserWhenTokenStored(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /account", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.User{Username: "bob", DisplayName: "Bob"})
	})

	server := newTestEnv(t, mux)
	require.NoError(t, server.storage.Write("stored-token"))

	// A fresh root store picks the token up from storage at construction.
	store := NewRootStore(Config{
		BaseURL:      server.store.Agent().BaseURL(),
		TokenStorage: server.storage,
		Navigator:    server.navigator,
		Notifier:     server.notifier,
	})
	store.Initialize(context.Background())

	assert.True(t, store.UserStore.IsLoggedIn())
	assert.True(t, store.CommonStore.AppLoaded())
}

func TestInitializeWithoutTokenJustMarksLoaded(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())

	env.store.Initialize(context.Background())

	assert.False(t, env.store.UserStore.IsLoggedIn())
	assert.True(t, env.store.CommonStore.AppLoaded())
}
