package speech

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"infograph-server/modules/common/gemini"
	"infograph-server/modules/common/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes - 라우터에 Speech 엔드포인트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/speech/transcribe", h.Transcribe).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/speech/synthesize", h.Synthesize).Methods("POST", "OPTIONS")
}

type transcribeRequest struct {
	// Audio - base64 혹은 data URL
	Audio    string `json:"audio"`
	MimeType string `json:"mimeType"`
}

type transcribeResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Transcribe - POST /api/speech/transcribe
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Audio == "" {
		writeJSON(w, http.StatusBadRequest, transcribeResponse{Success: false, Error: "audio is required"})
		return
	}

	audioData, err := base64.StdEncoding.DecodeString(utils.ExtractBase64Data(req.Audio))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, transcribeResponse{Success: false, Error: "invalid audio encoding"})
		return
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = utils.ExtractMimeType(req.Audio)
	}

	text, err := h.service.Transcribe(r.Context(), audioData, mimeType)
	if err != nil {
		log.Printf("❌ [Speech] Transcribe: %v", err)
		classified := gemini.Classify(err)
		writeJSON(w, gemini.HTTPStatus(classified), transcribeResponse{Success: false, Error: classified.Error()})
		return
	}

	writeJSON(w, http.StatusOK, transcribeResponse{Success: true, Text: text})
}

type synthesizeRequest struct {
	Text string `json:"text"`
}

type synthesizeResponse struct {
	Success    bool   `json:"success"`
	Audio      string `json:"audio,omitempty"` // base64 PCM16
	MimeType   string `json:"mimeType,omitempty"`
	SampleRate int    `json:"sampleRate,omitempty"`
	// SampleCount - 디코딩된 PCM16 샘플 수 (클라이언트 재생 길이 계산용)
	SampleCount int    `json:"sampleCount,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Synthesize - POST /api/speech/synthesize
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, synthesizeResponse{Success: false, Error: "text is required"})
		return
	}

	audio, err := h.service.Synthesize(r.Context(), req.Text)
	if err != nil {
		log.Printf("❌ [Speech] Synthesize: %v", err)
		classified := gemini.Classify(err)
		writeJSON(w, gemini.HTTPStatus(classified), synthesizeResponse{Success: false, Error: classified.Error()})
		return
	}

	writeJSON(w, http.StatusOK, synthesizeResponse{
		Success:     true,
		Audio:       base64.StdEncoding.EncodeToString(audio.Data),
		MimeType:    audio.MimeType,
		SampleRate:  audio.SampleRate,
		SampleCount: len(utils.DecodePCM16(audio.Data)),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
