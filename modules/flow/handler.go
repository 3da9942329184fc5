package flow

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"infograph-server/modules/common/gemini"
	"infograph-server/modules/history"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// RegisterRoutes - 라우터에 Flow 엔드포인트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/session", h.CreateSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/flow/generate", h.Generate).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/flow/edit", h.Edit).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/flow/analyze", h.Analyze).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/flow/restore", h.Restore).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/flow/state/{sessionId}", h.GetState).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/history/{sessionId}", h.GetHistory).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/key/status", h.KeyStatus).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/key/refresh", h.KeyRefresh).Methods("POST", "OPTIONS")
}

// statusFor - 플로우 에러를 HTTP 상태 코드로 변환
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNothingToEdit):
		return http.StatusBadRequest
	}
	return gemini.HTTPStatus(err)
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateSession - POST /api/session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: h.manager.NewSession()})
}

type generateRequest struct {
	SessionID string `json:"sessionId"`
	GenerateRequest
}

type imageResponse struct {
	Success bool                    `json:"success"`
	Image   *history.GeneratedImage `json:"image,omitempty"`
	State   *StateView              `json:"state,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// Generate - POST /api/flow/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, imageResponse{Success: false, Error: "invalid request body"})
		return
	}

	orch := h.manager.GetOrCreate(req.SessionID)
	record, err := orch.Generate(r.Context(), &req.GenerateRequest)
	h.manager.CountFlow(err != nil)
	if err != nil {
		log.Printf("❌ [Flow] Generate failed (session %s): %v", req.SessionID, err)
		writeJSON(w, statusFor(err), imageResponse{Success: false, Error: err.Error(), State: orch.View()})
		return
	}

	writeJSON(w, http.StatusOK, imageResponse{Success: true, Image: record, State: orch.View()})
}

type editRequest struct {
	SessionID string `json:"sessionId"`
	EditRequest
}

// Edit - POST /api/flow/edit
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Instruction == "" {
		writeJSON(w, http.StatusBadRequest, imageResponse{Success: false, Error: "instruction is required"})
		return
	}

	orch := h.manager.Get(req.SessionID)
	if orch == nil {
		writeJSON(w, http.StatusNotFound, imageResponse{Success: false, Error: "session not found"})
		return
	}

	record, err := orch.Edit(r.Context(), &req.EditRequest)
	h.manager.CountFlow(err != nil)
	if err != nil {
		log.Printf("❌ [Flow] Edit failed (session %s): %v", req.SessionID, err)
		writeJSON(w, statusFor(err), imageResponse{Success: false, Error: err.Error(), State: orch.View()})
		return
	}

	writeJSON(w, http.StatusOK, imageResponse{Success: true, Image: record, State: orch.View()})
}

type analyzeRequest struct {
	SessionID string `json:"sessionId"`
	AnalyzeRequest
}

type analyzeResponse struct {
	Success bool       `json:"success"`
	State   *StateView `json:"state,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Analyze - POST /api/flow/analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, analyzeResponse{Success: false, Error: "invalid request body"})
		return
	}

	orch := h.manager.GetOrCreate(req.SessionID)
	_, err := orch.Analyze(r.Context(), &req.AnalyzeRequest)
	h.manager.CountFlow(err != nil)
	if err != nil {
		log.Printf("❌ [Flow] Analyze failed (session %s): %v", req.SessionID, err)
		writeJSON(w, statusFor(err), analyzeResponse{Success: false, Error: err.Error(), State: orch.View()})
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, State: orch.View()})
}

type restoreRequest struct {
	SessionID string `json:"sessionId"`
	ImageID   string `json:"imageId"`
}

// Restore - POST /api/flow/restore
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageID == "" {
		writeJSON(w, http.StatusBadRequest, analyzeResponse{Success: false, Error: "imageId is required"})
		return
	}

	orch := h.manager.Get(req.SessionID)
	if orch == nil {
		writeJSON(w, http.StatusNotFound, analyzeResponse{Success: false, Error: "session not found"})
		return
	}

	if !orch.Restore(req.ImageID) {
		writeJSON(w, http.StatusNotFound, analyzeResponse{Success: false, Error: "image not found"})
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, State: orch.View()})
}

// GetState - GET /api/flow/state/{sessionId}
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	orch := h.manager.Get(mux.Vars(r)["sessionId"])
	if orch == nil {
		writeJSON(w, http.StatusNotFound, analyzeResponse{Success: false, Error: "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, orch.View())
}

type historyResponse struct {
	Images []*history.GeneratedImage `json:"images"`
}

// GetHistory - GET /api/history/{sessionId}
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	orch := h.manager.Get(mux.Vars(r)["sessionId"])
	if orch == nil {
		writeJSON(w, http.StatusNotFound, analyzeResponse{Success: false, Error: "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Images: orch.History()})
}

type keyStatusResponse struct {
	HasValidKey bool `json:"hasValidKey"`
}

// KeyStatus - GET /api/key/status
func (h *Handler) KeyStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, keyStatusResponse{HasValidKey: h.manager.HasValidKey()})
}

// KeyRefresh - POST /api/key/refresh (키 재선택 후 플래그 복구)
func (h *Handler) KeyRefresh(w http.ResponseWriter, r *http.Request) {
	h.manager.RefreshKey()
	writeJSON(w, http.StatusOK, keyStatusResponse{HasValidKey: h.manager.HasValidKey()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
