package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leozex777/syncschwab/internal/cache"
	"github.com/leozex777/syncschwab/internal/config"
	"github.com/leozex777/syncschwab/internal/http/controllers"
	"github.com/leozex777/syncschwab/internal/http/dto"
	"github.com/leozex777/syncschwab/internal/http/router"
	"github.com/leozex777/syncschwab/internal/notify"
	"github.com/leozex777/syncschwab/internal/registry"
	"github.com/leozex777/syncschwab/internal/shell"
	"github.com/leozex777/syncschwab/internal/status"
	"github.com/leozex777/syncschwab/internal/store"
	"github.com/leozex777/syncschwab/internal/token"
)

// newTestServer arma la API completa sobre directorios temporales.
func newTestServer(t *testing.T) (*httptest.Server, *notify.Queue) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Paths.Root = t.TempDir()
	cfg.Paths.Config = "config"
	cfg.Paths.Data = "data"
	cfg.Paths.Tokens = "tokens"
	cfg.Paths.Logs = "logs"
	require.NoError(t, cfg.EnsureDirs())

	c := cache.NewMemory("test", time.Minute)
	fs := store.NewFileStore(cfg.ClientsFile(), c)
	reg := registry.New(fs)
	checker := token.NewChecker(0)
	agg := status.NewAggregator(cfg, checker)
	queue := notify.NewQueue(0)

	mux := router.New(router.Deps{
		Clients:       controllers.NewClientsController(reg),
		MainAccount:   controllers.NewMainAccountController(reg, cfg),
		Status:        controllers.NewStatusController(reg, agg),
		Notifications: controllers.NewNotificationsController(queue, nil),
		UIState:       controllers.NewUIStateController(shell.NewStore(cfg.UIStateFile(), c)),
		Settings:      controllers.NewSettingsController(store.NewSettingsStore(cfg.SettingsFile(), c)),
		Health:        controllers.NewHealthController(cfg, c),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, queue
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func addClient(t *testing.T, srv *httptest.Server, name string) store.ClientRecord {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/clients", dto.AddClientRequest{
		AccountHash:   "HASH-" + name,
		AccountNumber: "123456",
		Name:          name,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[store.ClientRecord](t, resp)
}

func TestClients_AddListGet(t *testing.T) {
	srv, _ := newTestServer(t)

	c1 := addClient(t, srv, "Uno")
	require.Equal(t, "slave_1", c1.ID)
	require.True(t, c1.Enabled)

	c2 := addClient(t, srv, "Dos")
	require.Equal(t, "slave_2", c2.ID)

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/clients", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ClientListResponse](t, resp)
	require.Equal(t, 2, list.Total)
	require.Equal(t, "Uno", list.Clients[0].Name)

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/clients/slave_2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[store.ClientRecord](t, resp)
	require.Equal(t, "Dos", got.Name)
}

func TestClients_AddMissingFields(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/clients", dto.AddClientRequest{Name: "solo nombre"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClients_GetNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/clients/slave_99", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "CLIENT_NOT_FOUND", body.Code)
}

func TestClients_UpdateMergesSettings(t *testing.T) {
	srv, _ := newTestServer(t)
	addClient(t, srv, "Uno")

	resp := doJSON(t, http.MethodPatch, srv.URL+"/v1/clients/slave_1", dto.UpdateClientRequest{
		Updates: map[string]any{"settings": map[string]any{"ratio": 0.5}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPatch, srv.URL+"/v1/clients/slave_1", dto.UpdateClientRequest{
		Updates: map[string]any{"settings": map[string]any{"max_qty": 10}, "name": "Renombrado"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[store.ClientRecord](t, resp)

	require.Equal(t, "Renombrado", got.Name)
	require.Equal(t, 0.5, got.Settings["ratio"])
	require.EqualValues(t, 10, got.Settings["max_qty"])
}

func TestClients_DeleteIsIdempotent(t *testing.T) {
	srv, _ := newTestServer(t)
	addClient(t, srv, "Uno")

	resp := doJSON(t, http.MethodDelete, srv.URL+"/v1/clients/slave_1", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Segundo delete del mismo id: también 204.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/v1/clients/slave_1", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestClients_Toggle(t *testing.T) {
	srv, _ := newTestServer(t)
	addClient(t, srv, "Uno")

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/clients/slave_1/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tg := decode[dto.ToggleResponse](t, resp)
	require.False(t, tg.Enabled)

	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/clients/slave_1/toggle", nil)
	tg = decode[dto.ToggleResponse](t, resp)
	require.True(t, tg.Enabled)

	resp = doJSON(t, http.MethodPost, srv.URL+"/v1/clients/slave_99/toggle", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClients_ListEnabledFilter(t *testing.T) {
	srv, _ := newTestServer(t)
	addClient(t, srv, "Uno")
	addClient(t, srv, "Dos")

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/clients/slave_1/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/clients?enabled=true", nil)
	list := decode[dto.ClientListResponse](t, resp)
	require.Equal(t, 1, list.Total)
	require.Equal(t, "slave_2", list.Clients[0].ID)
}

func TestMainAccount_PutGet(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/main-account", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.MainAccountResponse](t, resp)
	require.False(t, got.Configured)

	resp = doJSON(t, http.MethodPut, srv.URL+"/v1/main-account", dto.MainAccountRequest{
		AccountHash: "MAINHASH", AccountNumber: "777",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/main-account", nil)
	got = decode[dto.MainAccountResponse](t, resp)
	require.True(t, got.Configured)
	require.Equal(t, "MAINHASH", got.AccountHash)
	require.False(t, got.FromCache)
}

func TestNotifications_PollDrains(t *testing.T) {
	srv, queue := newTestServer(t)

	queue.Info("hola")
	queue.Error("algo falló")

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/notifications", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.NotificationsResponse](t, resp)
	require.Len(t, got.Notifications, 2)
	require.Equal(t, "hola", got.Notifications[0].Message)
	require.False(t, got.CacheUpdated)

	// Segunda consulta: la cola quedó vacía.
	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/notifications", nil)
	got = decode[dto.NotificationsResponse](t, resp)
	require.Empty(t, got.Notifications)
}

func TestUIState_PutResolvesPage(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/ui-state", nil)
	got := decode[dto.UIStateResponse](t, resp)
	require.Equal(t, shell.PageDashboard, got.Page)

	resp = doJSON(t, http.MethodPut, srv.URL+"/v1/ui-state", shell.UIState{ShowClientManagement: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[dto.UIStateResponse](t, resp)
	require.Equal(t, shell.PageClientManagement, got.Page)

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/ui-state", nil)
	got = decode[dto.UIStateResponse](t, resp)
	require.Equal(t, shell.PageClientManagement, got.Page)
}

func TestSettings_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/v1/settings", map[string]any{
		"toast_on_error": false,
		"polling_ms":     500,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/settings", nil)
	got := decode[map[string]any](t, resp)
	require.Equal(t, false, got["toast_on_error"])
	require.EqualValues(t, 500, got["polling_ms"])
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/readyz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWorkerStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/worker", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.WorkerStatusResponse](t, resp)
	require.Equal(t, "stop", got.Command)
	require.False(t, got.Running)
}
