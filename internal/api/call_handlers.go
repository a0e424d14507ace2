package api

import (
	"dialdesk/internal/entities"
	dderrors "dialdesk/internal/errors"
	"dialdesk/internal/service"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

type CallHandler struct {
	Service *service.CallService
}

func NewCallHandler(svc *service.CallService) *CallHandler {
	return &CallHandler{Service: svc}
}

func writeError(w http.ResponseWriter, err error) {
	var httpErr *dderrors.HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// EvaluateCallWindow answers whether the tenant may be called right now
// (or at the instant given in the body) without creating a call.
func (h *CallHandler) EvaluateCallWindow(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid tenant ID", http.StatusBadRequest)
		return
	}

	at := time.Now().UTC()
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.At != "" {
		at, err = time.Parse(time.RFC3339, req.At)
		if err != nil {
			http.Error(w, "Invalid 'at' timestamp, expected RFC3339", http.StatusBadRequest)
			return
		}
	}

	res, err := h.Service.EvaluateWindow(tenantID, at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (h *CallHandler) RequestCall(w http.ResponseWriter, r *http.Request) {
	var req entities.CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.RequestCall(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *CallHandler) GetCall(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid call ID", http.StatusBadRequest)
		return
	}
	call, err := h.Service.GetCall(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, call)
}
