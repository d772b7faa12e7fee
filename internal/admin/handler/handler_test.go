package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastebot/internal/admin"
	"wastebot/internal/admin/service"
	"wastebot/internal/jwttoken"
	"wastebot/internal/platform/logger"
	"wastebot/pkg/testutil"
)

func newAdminRouter(t *testing.T) chi.Router {
	t.Helper()
	log := logger.New()
	tokens := jwttoken.NewService("test-signing-key", "wastebot-test", time.Hour)
	svc := service.NewService(admin.NewInMemoryStore(), tokens, service.WithLogger(log))

	router := chi.NewRouter()
	New(svc, log, jwttoken.NewServiceAdapter(tokens)).Register(router)
	return router
}

func registerAndLogin(t *testing.T, router chi.Router) (adminID, token string) {
	t.Helper()

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/admins", map[string]string{
		"name": "Ops", "email": "ops@example.com", "password": "password123",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, rec, &created)

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/admins/login", map[string]string{
		"email": "ops@example.com", "password": "password123",
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSON(t, rec, &login)
	require.NotEmpty(t, login.Token)

	return created.ID, login.Token
}

func TestRegisterNeverEchoesPassword(t *testing.T) {
	router := newAdminRouter(t)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/admins", map[string]string{
		"name": "Ops", "email": "ops@example.com", "password": "password123",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password123")
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestRegisterDuplicateEmailIs409(t *testing.T) {
	router := newAdminRouter(t)
	registerAndLogin(t, router)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/admins", map[string]string{
		"name": "Clone", "email": "ops@example.com", "password": "other",
	}))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginBadCredentialsIs401(t *testing.T) {
	router := newAdminRouter(t)
	registerAndLogin(t, router)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/admins/login", map[string]string{
		"email": "ops@example.com", "password": "wrong",
	}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListRequiresToken(t *testing.T) {
	router := newAdminRouter(t)
	_, token := registerAndLogin(t, router)

	rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/admins"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = testutil.DoRequest(router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/api/admins"), token))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	router := newAdminRouter(t)
	adminID, token := registerAndLogin(t, router)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/api/admins/"+adminID, map[string]string{
		"name": "Renamed",
	})
	rec := testutil.DoRequest(router, testutil.WithBearer(req, token))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Name string `json:"name"`
	}
	testutil.DecodeJSON(t, rec, &updated)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateUnknownAdminIs404(t *testing.T) {
	router := newAdminRouter(t)
	_, token := registerAndLogin(t, router)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/api/admins/no-such-id", map[string]string{
		"name": "X",
	})
	rec := testutil.DoRequest(router, testutil.WithBearer(req, token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
