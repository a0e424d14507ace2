package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialdesk/internal/db"
	"dialdesk/internal/entities"
	"dialdesk/internal/schedule"
	"dialdesk/internal/service"
)

type stubTenantStore struct {
	tenant *db.Tenant
	cfg    *schedule.BusinessHoursConfig
}

func (s *stubTenantStore) GetTenant(id int) (*db.Tenant, error) {
	if s.tenant == nil || s.tenant.ID != id {
		return nil, nil
	}
	return s.tenant, nil
}

func (s *stubTenantStore) GetBusinessHours(tenantID int) (*schedule.BusinessHoursConfig, error) {
	return s.cfg, nil
}

type stubCallStore struct {
	created []*db.OutboundCall
}

func (s *stubCallStore) CreateCall(call *db.OutboundCall) error {
	call.ID = len(s.created) + 1
	s.created = append(s.created, call)
	return nil
}
func (s *stubCallStore) GetCall(id int) (*db.OutboundCall, error) { return nil, nil }
func (s *stubCallStore) GetDueDeferredCalls(now time.Time) ([]db.OutboundCall, error) {
	return nil, nil
}
func (s *stubCallStore) MarkDispatched(id int, providerSID string) error     { return nil }
func (s *stubCallStore) DeferCall(id int, at time.Time, reason string) error { return nil }
func (s *stubCallStore) MarkFailed(ids []int, reason string) error           { return nil }

type stubVoice struct{}

func (s *stubVoice) StartCall(toNumber, script string) (string, error) { return "CA999", nil }

type stubAlerter struct{}

func (s *stubAlerter) SendMisconfigAlert(data entities.AlertEmailData) {}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	raw, err := json.Marshal(schedule.DayWindow{Start: "09:00", End: "17:00", Enabled: true})
	require.NoError(t, err)
	cfg := &schedule.BusinessHoursConfig{Timezone: "Europe/London"}
	for i := range cfg.Days {
		cfg.Days[i] = raw
	}
	tenants := &stubTenantStore{tenant: &db.Tenant{ID: 1, Name: "Acme", Timezone: "Europe/London"}, cfg: cfg}
	svc := service.NewCallService(tenants, &stubCallStore{}, &stubVoice{}, &stubAlerter{})

	handler := NewCallHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/tenants/{id}/call-window", handler.EvaluateCallWindow).Methods("POST")
	r.HandleFunc("/api/calls", handler.RequestCall).Methods("POST")
	return r
}

func TestEvaluateCallWindowEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{"at":"2026-01-05T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tenants/1/call-window", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res schedule.EvaluationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.True(t, res.Allowed)
	assert.Equal(t, "Monday", res.Day)
	assert.Equal(t, "10:00", res.LocalTime)
}

func TestEvaluateCallWindowDenied(t *testing.T) {
	router := newTestRouter(t)

	body := `{"at":"2026-01-05T18:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tenants/1/call-window", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res schedule.EvaluationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.False(t, res.Allowed)
	assert.Contains(t, res.Reason, "Outside business hours")
	require.NotNil(t, res.NextAllowedTime)
}

func TestEvaluateCallWindowUnknownTenant(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tenants/99/call-window", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvaluateCallWindowBadTimestamp(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tenants/1/call-window", strings.NewReader(`{"at":"tomorrow"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestCallEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{"tenant_id":1,"contact_name":"Jo","contact_phone":"+447700900123","script":"Hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/calls", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entities.CallResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, []string{db.CallStatusDispatched, db.CallStatusDeferred}, resp.Status)
	assert.NotZero(t, resp.ID)
}
