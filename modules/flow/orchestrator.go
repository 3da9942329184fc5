package flow

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"infograph-server/modules/analyze"
	"infograph-server/modules/common/gemini"
	"infograph-server/modules/composer"
	"infograph-server/modules/history"
	"infograph-server/modules/research"
	"infograph-server/modules/synthesis"
)

// Orchestrator - 세션 1개의 플로우 상태 머신
// 한 번에 하나의 플로우만 허용하고, 진행 중 새 요청은 거부함 (큐잉 없음)
type Orchestrator struct {
	sessionID string

	researchSvc  *research.Service
	synthesisSvc *synthesis.Service
	analyzeSvc   *analyze.Service

	store    *history.Store
	notify   Notifier
	keyValid *atomic.Bool

	mutex        sync.Mutex
	state        State
	lastError    string
	facts        []string
	citations    []research.Citation
	analysis     *analyze.Report
	lastActivity time.Time
}

// NewOrchestrator - 세션용 오케스트레이터 생성
func NewOrchestrator(sessionID string, researchSvc *research.Service, synthesisSvc *synthesis.Service, analyzeSvc *analyze.Service, notify Notifier, keyValid *atomic.Bool) *Orchestrator {
	if notify == nil {
		notify = func(Update) {}
	}
	return &Orchestrator{
		sessionID:    sessionID,
		researchSvc:  researchSvc,
		synthesisSvc: synthesisSvc,
		analyzeSvc:   analyzeSvc,
		store:        history.NewStore(),
		notify:       notify,
		keyValid:     keyValid,
		state:        StateIdle,
		facts:        []string{},
		citations:    []research.Citation{},
		lastActivity: time.Now(),
	}
}

// begin - Idle일 때만 작업 상태로 진입 (이전 에러는 항상 지움)
func (o *Orchestrator) begin(next State, clearResults bool) error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.state != StateIdle {
		return ErrBusy
	}

	o.state = next
	o.lastError = ""
	if clearResults {
		// generate 플로우는 이전 팩트/출처/분석도 초기화
		o.facts = []string{}
		o.citations = []research.Citation{}
		o.analysis = nil
	}
	o.lastActivity = time.Now()

	o.notifyLocked()
	return nil
}

// transition - 작업 중 상태 전환 (Researching → Synthesizing)
func (o *Orchestrator) transition(next State) {
	o.mutex.Lock()
	o.state = next
	o.notifyLocked()
	o.mutex.Unlock()
}

// finish - Idle로 복귀, 실패 시 에러 슬롯 기록
// 어떤 실패도 치명적이지 않음 - 항상 Idle로 돌아옴
func (o *Orchestrator) finish(err error) {
	o.mutex.Lock()
	o.state = StateIdle
	if err != nil {
		o.lastError = err.Error()
	}
	o.lastActivity = time.Now()
	o.notifyLocked()
	o.mutex.Unlock()
}

// notifyLocked - 현재 상태 이벤트 발행 (mutex 보유 상태에서 호출)
func (o *Orchestrator) notifyLocked() {
	o.notify(Update{
		SessionID: o.sessionID,
		State:     o.state,
		Step:      o.state.Step(),
		Error:     o.lastError,
	})
}

// classify - 서비스 에러를 사용자 노출용으로 변환, 키 오류면 키 플래그 해제
func (o *Orchestrator) classify(err error) error {
	if errors.Is(err, gemini.ErrNoImage) {
		return gemini.ErrNoImage
	}
	classified := gemini.Classify(err)
	if errors.Is(classified, gemini.ErrKeyRequired) && o.keyValid != nil {
		o.keyValid.Store(false)
	}
	return classified
}

// Generate - 리서치 → 이미지 합성 → 히스토리 기록
func (o *Orchestrator) Generate(ctx context.Context, req *GenerateRequest) (*history.GeneratedImage, error) {
	// 입력 검증은 상태 변경 전에 수행
	if req.Topic == "" && req.SourceImage == "" {
		return nil, ErrInvalidInput
	}
	if !req.Model.Valid() {
		req.Model = synthesis.ModelFlash
	}
	if req.AspectRatio == "" {
		req.AspectRatio = synthesis.RatioSquare
	}

	levelInstruction, styleInstruction := composer.ComposeInstructions(req.Level, req.Style)

	imagePrompt := ""
	if req.Topic != "" {
		if err := o.begin(StateResearching, true); err != nil {
			return nil, err
		}

		result, err := o.researchSvc.Research(ctx, &research.Request{
			Topic:    req.Topic,
			Level:    req.Level,
			Style:    req.Style,
			Language: req.Language,
			Location: req.Location,
		})
		if err != nil {
			classified := o.classify(err)
			o.finish(classified)
			return nil, classified
		}

		o.mutex.Lock()
		o.facts = result.Facts
		o.citations = result.Citations
		o.mutex.Unlock()

		imagePrompt = result.ImagePrompt
		o.transition(StateSynthesizing)
	} else {
		// 주제 없이 이미지만 받은 경우: 리서치 없이 바로 합성
		if err := o.begin(StateSynthesizing, true); err != nil {
			return nil, err
		}
		if req.Model == synthesis.ModelImagen {
			// imagen은 이미지 입력을 못 받으므로 원본 이미지가 버려짐
			imagePrompt = "Create an explanatory infographic. " +
				levelInstruction + " " + styleInstruction
		} else {
			imagePrompt = "Create an explanatory infographic based on the attached image. " +
				levelInstruction + " " + styleInstruction
		}
	}

	var dataURL string
	var err error
	if req.SourceImage != "" && req.Model != synthesis.ModelImagen {
		// 원본 이미지가 있으면 인라인 입력으로 함께 전송
		dataURL, err = o.synthesisSvc.Edit(ctx, req.SourceImage, imagePrompt, req.Model, req.AspectRatio)
	} else {
		dataURL, err = o.synthesisSvc.Synthesize(ctx, imagePrompt, req.Model, req.AspectRatio, req.ImageSize)
	}
	if err != nil {
		classified := o.classify(err)
		o.finish(classified)
		return nil, classified
	}

	now := time.Now()
	record := &history.GeneratedImage{
		ID:           history.NewID(now),
		DataURL:      dataURL,
		SourcePrompt: imagePrompt,
		CreatedAt:    now,
		Config: history.GenerationConfig{
			Level:       req.Level,
			Style:       req.Style,
			Language:    req.Language,
			AspectRatio: req.AspectRatio,
			Model:       req.Model,
			ImageSize:   req.ImageSize,
		},
	}
	o.store.Prepend(record)

	log.Printf("🖼️  [Flow] Generated image %s (session %s, history %d)", record.ID, o.sessionID, o.store.Len())
	o.finish(nil)
	return record, nil
}

// Edit - 최근 이미지를 지시문으로 수정
// 이전 레코드의 level/style/language/ratio는 승계하고 모델만 교체
func (o *Orchestrator) Edit(ctx context.Context, req *EditRequest) (*history.GeneratedImage, error) {
	previous := o.store.Latest()
	if previous == nil {
		return nil, ErrNothingToEdit
	}

	model := req.Model
	if model == "" {
		model = previous.Config.Model
	}

	if err := o.begin(StateEditingImage, false); err != nil {
		return nil, err
	}

	dataURL, err := o.synthesisSvc.Edit(ctx, previous.DataURL, req.Instruction, model, previous.Config.AspectRatio)
	if err != nil {
		classified := o.classify(err)
		o.finish(classified)
		return nil, classified
	}

	now := time.Now()
	record := &history.GeneratedImage{
		ID:           history.NewID(now),
		DataURL:      dataURL,
		SourcePrompt: req.Instruction,
		CreatedAt:    now,
		Config: history.GenerationConfig{
			Level:       previous.Config.Level,
			Style:       previous.Config.Style,
			Language:    previous.Config.Language,
			AspectRatio: previous.Config.AspectRatio,
			Model:       model,
			ImageSize:   previous.Config.ImageSize,
		},
	}
	o.store.Prepend(record)

	// 새 이미지가 표시되므로 분석 결과는 내림
	o.mutex.Lock()
	o.analysis = nil
	o.mutex.Unlock()

	log.Printf("✏️  [Flow] Edited image %s → %s (session %s)", previous.ID, record.ID, o.sessionID)
	o.finish(nil)
	return record, nil
}

// Analyze - 업로드 이미지 분석 (이미지 합성 경로를 타지 않음)
func (o *Orchestrator) Analyze(ctx context.Context, req *AnalyzeRequest) (*analyze.Report, error) {
	if req.Image == "" {
		return nil, ErrInvalidInput
	}

	if err := o.begin(StateAnalyzingImage, false); err != nil {
		return nil, err
	}

	report, err := o.analyzeSvc.Analyze(ctx, req.Image, req.Question, req.Context)
	if err != nil {
		classified := o.classify(err)
		o.finish(classified)
		return nil, classified
	}

	// 분석 결과가 표시 슬롯을 차지함 (생성 이미지 표시와 상호 배타)
	o.mutex.Lock()
	o.analysis = report
	o.mutex.Unlock()

	o.finish(nil)
	return report, nil
}

// Restore - 히스토리 재정렬 (유일하게 생성 없이 순서만 바꾸는 연산)
// 분석 선택도 함께 초기화됨
func (o *Orchestrator) Restore(id string) bool {
	ok := o.store.Restore(id)
	if ok {
		o.mutex.Lock()
		o.analysis = nil
		o.lastActivity = time.Now()
		o.mutex.Unlock()
	}
	return ok
}

// History - 히스토리 스냅샷
func (o *Orchestrator) History() []*history.GeneratedImage {
	return o.store.Snapshot()
}

// View - 현재 플로우 상태 스냅샷
func (o *Orchestrator) View() *StateView {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	hasKey := true
	if o.keyValid != nil {
		hasKey = o.keyValid.Load()
	}

	return &StateView{
		SessionID:   o.sessionID,
		State:       o.state,
		Step:        o.state.Step(),
		Error:       o.lastError,
		Facts:       o.facts,
		Citations:   o.citations,
		Analysis:    o.analysis,
		LatestImage: o.store.Latest(),
		HistoryLen:  o.store.Len(),
		HasValidKey: hasKey,
	}
}

// LastActivity - 세션 정리 판단용
func (o *Orchestrator) LastActivity() time.Time {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.lastActivity
}
