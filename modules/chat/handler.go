package chat

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"infograph-server/modules/common/gemini"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes - 라우터에 Chat 엔드포인트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/chat", h.SendMessage).Methods("POST", "OPTIONS")
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SendMessage - POST /api/chat
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, chatResponse{Success: false, Error: "message is required"})
		return
	}

	reply, err := h.service.Send(r.Context(), req.Message)
	if err != nil {
		log.Printf("❌ [Chat] %v", err)
		classified := gemini.Classify(err)
		writeJSON(w, gemini.HTTPStatus(classified), chatResponse{Success: false, Error: classified.Error()})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Success: true, Reply: reply})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
