package test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastebot/internal/admin"
	adminhandler "wastebot/internal/admin/handler"
	adminservice "wastebot/internal/admin/service"
	"wastebot/internal/gateway"
	"wastebot/internal/jwttoken"
	"wastebot/internal/platform/logger"
	"wastebot/internal/platform/middleware"
	"wastebot/internal/robot"
	robothandler "wastebot/internal/robot/handler"
	robotservice "wastebot/internal/robot/service"
	"wastebot/internal/waste"
	wastehandler "wastebot/internal/waste/handler"
	wasteservice "wastebot/internal/waste/service"
	"wastebot/pkg/platform/audit/publisher"
	auditmemory "wastebot/pkg/platform/audit/store/memory"
	"wastebot/pkg/testutil"
)

// newFleetStack wires the full API server with in-memory stores and puts the
// edge gateway in front of it, so requests travel the same path they would in
// a deployed fleet.
func newFleetStack(t *testing.T) http.Handler {
	t.Helper()

	log := logger.New()
	tokens := jwttoken.NewService("e2e-signing-key", "wastebot", time.Hour)
	validator := jwttoken.NewServiceAdapter(tokens)

	auditPub := publisher.NewPublisher(auditmemory.NewInMemoryStore())
	t.Cleanup(auditPub.Close)

	admins := adminservice.NewService(admin.NewInMemoryStore(), tokens,
		adminservice.WithLogger(log),
		adminservice.WithAuditPublisher(auditPub),
	)
	robots := robotservice.NewService(robot.NewInMemoryStore(),
		robotservice.WithLogger(log),
		robotservice.WithAuditPublisher(auditPub),
	)
	wastes := wasteservice.NewService(waste.NewInMemoryStore(),
		wasteservice.WithLogger(log),
		wasteservice.WithAuditPublisher(auditPub),
	)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	adminhandler.New(admins, log, validator).Register(router)
	robothandler.New(robots, log, validator).Register(router)
	wastehandler.New(wastes, log).Register(router)

	api := httptest.NewServer(router)
	t.Cleanup(api.Close)

	proxy, err := gateway.New(gateway.DefaultRoutes(), map[string][]string{
		"admin-service": {api.URL},
		"robot-service": {api.URL},
		"waste-service": {api.URL},
	}, log)
	require.NoError(t, err)
	return proxy
}

func TestFleetLifecycleThroughGateway(t *testing.T) {
	stack := newFleetStack(t)

	// Register an admin and log in.
	rec := testutil.DoRequest(stack, testutil.NewJSONRequest(t, http.MethodPost, "/admin", map[string]any{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "correct horse",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	var registered struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, rec, &registered)
	require.NotEmpty(t, registered.ID)

	rec = testutil.DoRequest(stack, testutil.NewJSONRequest(t, http.MethodPost, "/admin/login", map[string]any{
		"email":    "ada@example.com",
		"password": "correct horse",
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSON(t, rec, &login)
	require.NotEmpty(t, login.Token)

	// Robot mutations are gated; without a token they are rejected.
	rec = testutil.DoRequest(stack, testutil.NewJSONRequest(t, http.MethodPost, "/robot", map[string]any{
		"macAddress": "02:42:ac:11:00:02",
		"region":     "north",
	}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Register a robot; new robots start inactive.
	req := testutil.NewJSONRequest(t, http.MethodPost, "/robot", map[string]any{
		"macAddress": "02:42:ac:11:00:02",
		"region":     "north",
		"model":      "WB-200",
		"adminId":    registered.ID,
	})
	testutil.WithBearer(req, login.Token)
	rec = testutil.DoRequest(stack, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var createdRobot struct {
		ID     string `json:"id"`
		Active bool   `json:"status"`
	}
	testutil.DecodeJSON(t, rec, &createdRobot)
	require.NotEmpty(t, createdRobot.ID)
	assert.False(t, createdRobot.Active)

	// Activate it.
	req = testutil.NewRequest(t, http.MethodPost, "/robot/"+createdRobot.ID+"/activate")
	testutil.WithBearer(req, login.Token)
	rec = testutil.DoRequest(stack, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = testutil.NewRequest(t, http.MethodGet, "/robot/"+createdRobot.ID)
	testutil.WithBearer(req, login.Token)
	rec = testutil.DoRequest(stack, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var activeRobot struct {
		Active bool `json:"status"`
	}
	testutil.DecodeJSON(t, rec, &activeRobot)
	assert.True(t, activeRobot.Active)

	// The robot reports a detection; no credentials needed on this path.
	rec = testutil.DoRequest(stack, testutil.NewJSONRequest(t, http.MethodPost, "/waste/detect", map[string]any{
		"category":   "plastic",
		"region":     "north",
		"confidence": 0.95,
		"robotId":    createdRobot.ID,
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	var detected struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	testutil.DecodeJSON(t, rec, &detected)
	assert.Equal(t, "detected", detected.Status)

	// Confirm the collection and check the aggregate.
	rec = testutil.DoRequest(stack, testutil.NewRequest(t, http.MethodPost, "/waste/"+detected.ID+"/collect"))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = testutil.DoRequest(stack, testutil.NewRequest(t, http.MethodGet, "/waste/stats"))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats waste.Stats
	testutil.DecodeJSON(t, rec, &stats)
	assert.Equal(t, waste.Stats{Total: 1, Detected: 0, Collected: 1}, stats)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	log := logger.New()
	tokens := jwttoken.NewService("e2e-signing-key", "wastebot", -time.Minute)
	validator := jwttoken.NewServiceAdapter(tokens)

	robots := robotservice.NewService(robot.NewInMemoryStore(), robotservice.WithLogger(log))
	router := chi.NewRouter()
	robothandler.New(robots, log, validator).Register(router)

	expired, err := tokens.Generate("ada@example.com")
	require.NoError(t, err)

	req := testutil.NewRequest(t, http.MethodGet, "/api/robots")
	testutil.WithBearer(req, expired)
	rec := testutil.DoRequest(router, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
