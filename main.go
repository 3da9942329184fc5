package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"infograph-server/modules/analyze"
	"infograph-server/modules/chat"
	"infograph-server/modules/common/config"
	"infograph-server/modules/common/gemini"
	"infograph-server/modules/flow"
	"infograph-server/modules/research"
	"infograph-server/modules/speech"
	"infograph-server/modules/synthesis"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// 개발용 - 모든 origin 허용
		// 프로덕션에서는 특정 도메인만 허용하도록 수정
		return true
	},
}

// 연결된 클라이언트 정보
type Client struct {
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
}

// Hub - 세션별 플로우 이벤트 브로드캐스트
type Hub struct {
	mutex   sync.RWMutex
	clients map[string]map[*Client]bool // sessionID → clients
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]bool)}
}

func (h *Hub) addClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.clients[client.sessionID] == nil {
		h.clients[client.sessionID] = make(map[*Client]bool)
	}
	h.clients[client.sessionID][client] = true
	log.Printf("👤 [Hub] Client joined session %s (Clients: %d)", client.sessionID, len(h.clients[client.sessionID]))
}

func (h *Hub) removeClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if clients, ok := h.clients[client.sessionID]; ok {
		if clients[client] {
			delete(clients, client)
			close(client.send)
		}
		if len(clients) == 0 {
			delete(h.clients, client.sessionID)
		}
	}
}

// Broadcast - 해당 세션의 모든 클라이언트에게 플로우 이벤트 전송
func (h *Hub) Broadcast(update flow.Update) {
	messageBytes, err := json.Marshal(map[string]any{
		"type":      "flow_update",
		"sessionId": update.SessionID,
		"state":     update.State,
		"step":      update.Step,
		"error":     update.Error,
	})
	if err != nil {
		log.Printf("Error marshaling flow update: %v", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for client := range h.clients[update.SessionID] {
		select {
		case client.send <- messageBytes:
		default:
			// 밀린 클라이언트는 건너뜀 (연결 정리는 pump가 담당)
		}
	}
}

// handleWebSocket - GET /ws?sessionId=...
func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [Hub] WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{conn: conn, sessionID: sessionID, send: make(chan []byte, 16)}
	h.addClient(client)

	go client.writePump()
	go client.readPump(h)
}

// writePump - send 채널의 메시지를 소켓으로 전송
func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readPump - 연결 종료 감지용 (클라이언트 발신 메시지는 무시)
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.removeClient(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// CORS 미들웨어
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "infograph-server",
	})
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// 백엔드는 호출마다 새 클라이언트를 만드는 one-shot 방식
	backend := gemini.NewOneShot(cfg.GeminiAPIKey)

	// 서비스 조립
	researchSvc := research.NewService(backend, cfg.GeminiTextModel, cfg.GeoIPEndpoint)
	synthesisSvc := synthesis.NewService(backend, synthesis.ModelNames{
		Flash:  cfg.GeminiFlashImageModel,
		Pro:    cfg.GeminiProImageModel,
		Imagen: cfg.GeminiImagenModel,
	}, cfg.WebPQuality)
	analyzeSvc := analyze.NewService(backend, cfg.GeminiTextModel)
	chatSvc := chat.NewService(backend, cfg.GeminiTextModel)
	speechSvc := speech.NewService(backend, cfg.GeminiTextModel, cfg.GeminiTTSModel)

	// 플로우 매니저 + websocket hub 연결
	hub := NewHub()
	manager := flow.NewManager(
		researchSvc, synthesisSvc, analyzeSvc,
		hub.Broadcast,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		cfg.GeminiAPIKey != "",
	)
	manager.StartCleanupRoutine()

	// 라우터 설정
	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/ws", hub.handleWebSocket)
	r.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics := manager.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"uptime":         time.Since(metrics.StartTime).String(),
			"startTime":      metrics.StartTime,
			"totalSessions":  metrics.TotalSessions,
			"activeSessions": metrics.ActiveSessions,
			"totalFlows":     metrics.TotalFlows,
			"failedFlows":    metrics.FailedFlows,
		})
	}).Methods("GET")

	flow.NewHandler(manager).RegisterRoutes(r)
	chat.NewHandler(chatSvc).RegisterRoutes(r)
	speech.NewHandler(speechSvc).RegisterRoutes(r)

	log.Printf("🚀 Infograph Server starting on port %s", cfg.Port)
	log.Printf("📡 WebSocket endpoint: ws://localhost:%s/ws", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("📊 Metrics: http://localhost:%s/metrics", cfg.Port)

	// 서버 시작
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
