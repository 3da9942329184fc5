package flow

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"infograph-server/modules/analyze"
	"infograph-server/modules/research"
	"infograph-server/modules/synthesis"
)

// Metrics - 서버 메트릭
type Metrics struct {
	TotalSessions  int64     `json:"totalSessions"`
	ActiveSessions int64     `json:"activeSessions"`
	TotalFlows     int64     `json:"totalFlows"`
	FailedFlows    int64     `json:"failedFlows"`
	StartTime      time.Time `json:"startTime"`
}

// Manager - 세션ID → 오케스트레이터 매핑 + 유휴 세션 정리
type Manager struct {
	researchSvc  *research.Service
	synthesisSvc *synthesis.Service
	analyzeSvc   *analyze.Service
	notify       Notifier
	sessionTTL   time.Duration

	// 키 유효성 플래그 - 403/404 발생 시 내려가고 재선택 시 복구
	keyValid atomic.Bool

	mutex    sync.RWMutex
	sessions map[string]*Orchestrator

	totalSessions atomic.Int64
	totalFlows    atomic.Int64
	failedFlows   atomic.Int64
	startTime     time.Time
}

// NewManager - 세션 매니저 생성
func NewManager(researchSvc *research.Service, synthesisSvc *synthesis.Service, analyzeSvc *analyze.Service, notify Notifier, sessionTTL time.Duration, hasKey bool) *Manager {
	m := &Manager{
		researchSvc:  researchSvc,
		synthesisSvc: synthesisSvc,
		analyzeSvc:   analyzeSvc,
		notify:       notify,
		sessionTTL:   sessionTTL,
		sessions:     make(map[string]*Orchestrator),
		startTime:    time.Now(),
	}
	m.keyValid.Store(hasKey)
	return m
}

// NewSession - 새 세션 생성, 세션ID 반환
func (m *Manager) NewSession() string {
	sessionID := uuid.New().String()

	m.mutex.Lock()
	m.sessions[sessionID] = NewOrchestrator(sessionID, m.researchSvc, m.synthesisSvc, m.analyzeSvc, m.notify, &m.keyValid)
	active := len(m.sessions)
	m.mutex.Unlock()

	total := m.totalSessions.Add(1)
	log.Printf("✅ [Flow] Created session %s (Total: %d, Active: %d)", sessionID, total, active)
	return sessionID
}

// Get - 세션 조회 (없으면 nil)
func (m *Manager) Get(sessionID string) *Orchestrator {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.sessions[sessionID]
}

// GetOrCreate - 세션 조회, 없으면 해당 ID로 생성
func (m *Manager) GetOrCreate(sessionID string) *Orchestrator {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	orch, exists := m.sessions[sessionID]
	if !exists {
		orch = NewOrchestrator(sessionID, m.researchSvc, m.synthesisSvc, m.analyzeSvc, m.notify, &m.keyValid)
		m.sessions[sessionID] = orch
		m.totalSessions.Add(1)
		log.Printf("✅ [Flow] Created session %s (Active: %d)", sessionID, len(m.sessions))
	}
	return orch
}

// CountFlow - 플로우 1건 집계
func (m *Manager) CountFlow(failed bool) {
	m.totalFlows.Add(1)
	if failed {
		m.failedFlows.Add(1)
	}
}

// HasValidKey - 현재 키 유효 플래그
func (m *Manager) HasValidKey() bool {
	return m.keyValid.Load()
}

// RefreshKey - 사용자가 키를 재선택했을 때 플래그 복구
func (m *Manager) RefreshKey() {
	m.keyValid.Store(true)
	log.Println("🔑 [Flow] API key flag refreshed")
}

// Snapshot - 메트릭 스냅샷
func (m *Manager) Snapshot() Metrics {
	m.mutex.RLock()
	active := len(m.sessions)
	m.mutex.RUnlock()

	return Metrics{
		TotalSessions:  m.totalSessions.Load(),
		ActiveSessions: int64(active),
		TotalFlows:     m.totalFlows.Load(),
		FailedFlows:    m.failedFlows.Load(),
		StartTime:      m.startTime,
	}
}

// StartCleanupRoutine - 유휴 세션 정리 루틴 시작 (5분 주기)
func (m *Manager) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			m.cleanupExpiredSessions()
		}
	}()
}

// cleanupExpiredSessions - TTL 지난 유휴 세션 제거
// 세션이 사라지면 히스토리도 함께 사라짐 (세션 수명 = 히스토리 수명)
func (m *Manager) cleanupExpiredSessions() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := time.Now()
	for sessionID, orch := range m.sessions {
		if now.Sub(orch.LastActivity()) > m.sessionTTL {
			delete(m.sessions, sessionID)
			log.Printf("🗑️  [Flow] Session %s expired and removed (Active: %d)", sessionID, len(m.sessions))
		}
	}
}
