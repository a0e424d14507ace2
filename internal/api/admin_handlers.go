package api

import (
	"dialdesk/internal/entities"
	"dialdesk/internal/service"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) GetBusinessHours(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid tenant ID", http.StatusBadRequest)
		return
	}
	payload, err := h.Service.GetBusinessHours(tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, payload)
}

func (h *AdminHandler) UpdateBusinessHours(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid tenant ID", http.StatusBadRequest)
		return
	}
	var payload entities.BusinessHoursPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateBusinessHours(tenantID, &payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "Business hours updated"})
}

func (h *AdminHandler) ListCalls(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid tenant ID", http.StatusBadRequest)
		return
	}
	status := r.URL.Query().Get("status")
	calls, err := h.Service.ListCalls(tenantID, status)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, calls)
}
