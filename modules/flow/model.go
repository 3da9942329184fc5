package flow

import (
	"errors"

	"infograph-server/modules/analyze"
	"infograph-server/modules/composer"
	"infograph-server/modules/history"
	"infograph-server/modules/research"
	"infograph-server/modules/synthesis"
)

// State - 오케스트레이터 상태 머신
type State string

const (
	StateIdle           State = "idle"
	StateResearching    State = "researching"
	StateSynthesizing   State = "synthesizing"
	StateEditingImage   State = "editing_image"
	StateAnalyzingImage State = "analyzing_image"
)

// Step - 프레젠테이션 진행 표시용 단계 (researching=1, synthesizing=2)
func (s State) Step() int {
	switch s {
	case StateResearching:
		return 1
	case StateSynthesizing:
		return 2
	}
	return 0
}

// 플로우 레벨 에러
var (
	// ErrBusy - 이미 다른 플로우가 진행 중 (큐잉 없이 거부)
	ErrBusy = errors.New("another operation is already in progress")
	// ErrInvalidInput - 주제와 원본 이미지가 모두 없는 경우
	ErrInvalidInput = errors.New("a topic or a source image is required")
	// ErrNothingToEdit - 편집할 이미지가 히스토리에 없는 경우
	ErrNothingToEdit = errors.New("there is no generated image to edit")
)

// GenerateRequest - generate 플로우 입력
type GenerateRequest struct {
	Topic       string                 `json:"topic"`
	Level       composer.AudienceLevel `json:"audienceLevel"`
	Style       composer.VisualStyle   `json:"visualStyle"`
	Language    composer.Language      `json:"language"`
	AspectRatio synthesis.AspectRatio  `json:"aspectRatio"`
	Model       synthesis.ImageModel   `json:"model"`
	ImageSize   synthesis.ImageSize    `json:"imageSize"`

	// SourceImage - 생성 기반이 될 업로드 이미지 (data URL, 선택)
	SourceImage string `json:"sourceImage,omitempty"`
	// Location - 위치 기반 grounding 좌표 (선택)
	Location *research.LatLng `json:"location,omitempty"`
}

// EditRequest - edit 플로우 입력
type EditRequest struct {
	Instruction string               `json:"instruction"`
	Model       synthesis.ImageModel `json:"model,omitempty"`
}

// AnalyzeRequest - analyze 플로우 입력
type AnalyzeRequest struct {
	Image    string `json:"image"`
	Question string `json:"question,omitempty"`
	Context  string `json:"context,omitempty"`
}

// Update - 상태 전이마다 프레젠테이션에 전달되는 이벤트
type Update struct {
	SessionID string `json:"sessionId"`
	State     State  `json:"state"`
	Step      int    `json:"step"`
	Error     string `json:"error,omitempty"`
}

// Notifier - 상태 전이 이벤트 수신자 (main.go가 websocket hub를 연결)
type Notifier func(update Update)

// StateView - GET /api/flow/state 스냅샷
type StateView struct {
	SessionID   string                  `json:"sessionId"`
	State       State                   `json:"state"`
	Step        int                     `json:"step"`
	Error       string                  `json:"error,omitempty"`
	Facts       []string                `json:"facts"`
	Citations   []research.Citation     `json:"citations"`
	Analysis    *analyze.Report         `json:"analysis,omitempty"`
	LatestImage *history.GeneratedImage `json:"latestImage,omitempty"`
	HistoryLen  int                     `json:"historyLen"`
	HasValidKey bool                    `json:"hasValidKey"`
}
