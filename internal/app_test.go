package internal

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-registry-api/internal/infrastructure/db/memory"
	"user-registry-api/internal/infrastructure/mq"
	"user-registry-api/internal/interface/api/rest"
)

func TestNewApp_MemoryStore(t *testing.T) {
	t.Setenv("SERVICE_ENV", "test")
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("RABBITMQ_HOST", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("POLICY_HASH_TIME_COST", "1")
	t.Setenv("POLICY_HASH_MEMORY_KIB", "1024")
	t.Setenv("POLICY_HASH_PARALLELISM", "1")

	app, err := NewApp(t.Context())
	require.NoError(t, err)
	t.Cleanup(app.Close)

	assert.IsType(t, &memory.UserRepository{}, app.users)
	assert.IsType(t, mq.Noop{}, app.mq)
	assert.Nil(t, app.mqConsumer)
	assert.Nil(t, app.db)

	app.InitControllers()

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		app.router.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, serve(http.MethodGet, rest.RouteHealth, "").Code)

	body := `{"name":"Ana Silva","email":"ana@ex.com","phone":"+55 11 98765-4321","birthdate":"1985-06-30","password":"StrongP@ss1"}`
	assert.Equal(t, http.StatusCreated, serve(http.MethodPost, rest.RouteUsers, body).Code)
	assert.Equal(t, http.StatusConflict, serve(http.MethodPost, rest.RouteUsers, body).Code)

	rr := serve(http.MethodGet, rest.RouteUsers, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"phone":"+5511987654321"`)

	rr = serve(http.MethodGet, rest.RouteMetrics, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "userregistry_general_counters")
}
