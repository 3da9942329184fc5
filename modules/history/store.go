package history

import (
	"strconv"
	"sync"
	"time"

	"infograph-server/modules/composer"
	"infograph-server/modules/synthesis"
)

// GenerationConfig - 생성 시점 설정 스냅샷 (레코드와 함께 보존)
type GenerationConfig struct {
	Level       composer.AudienceLevel `json:"audienceLevel"`
	Style       composer.VisualStyle   `json:"visualStyle"`
	Language    composer.Language      `json:"language"`
	AspectRatio synthesis.AspectRatio  `json:"aspectRatio"`
	Model       synthesis.ImageModel   `json:"model"`
	ImageSize   synthesis.ImageSize    `json:"imageSize"`
}

// GeneratedImage - 생성/편집 성공 1건의 기록 (생성 후 불변)
type GeneratedImage struct {
	ID           string           `json:"id"`
	DataURL      string           `json:"imageData"`
	SourcePrompt string           `json:"sourcePrompt"`
	CreatedAt    time.Time        `json:"createdAt"`
	Config       GenerationConfig `json:"config"`
}

// NewID - 생성 시각 기반 ID
func NewID(at time.Time) string {
	return "img-" + strconv.FormatInt(at.UnixNano(), 10)
}

// Store - 최신순 정렬 히스토리 (세션 생존 동안 무제한 보관)
type Store struct {
	mutex   sync.Mutex
	records []*GeneratedImage
}

func NewStore() *Store {
	return &Store{records: []*GeneratedImage{}}
}

// Prepend - 새 레코드를 맨 앞에 추가
func (s *Store) Prepend(record *GeneratedImage) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.records = append([]*GeneratedImage{record}, s.records...)
}

// Restore - ID로 찾은 레코드를 제거 후 맨 앞에 다시 추가 (복제 없이 재정렬)
// 모르는 ID면 false
func (s *Store) Restore(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, record := range s.records {
		if record.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.records = append([]*GeneratedImage{record}, s.records...)
			return true
		}
	}
	return false
}

// Latest - 가장 최근 레코드 (없으면 nil)
func (s *Store) Latest() *GeneratedImage {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.records) == 0 {
		return nil
	}
	return s.records[0]
}

// Snapshot - 현재 순서의 복사본 (레코드 자체는 불변이라 공유해도 안전)
func (s *Store) Snapshot() []*GeneratedImage {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	snapshot := make([]*GeneratedImage, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Len - 보관 중인 레코드 수
func (s *Store) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.records)
}
