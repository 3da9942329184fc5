package research

import "infograph-server/modules/composer"

// Citation - grounding 메타데이터에서 추출한 출처 (url 기준 유일)
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Result - 리서치 1회 호출의 결과 (생성 후 불변)
type Result struct {
	ImagePrompt string     `json:"imagePrompt"`
	Facts       []string   `json:"facts"`
	Citations   []Citation `json:"citations"`
}

// Request - 리서치 파이프라인 입력
type Request struct {
	Topic    string                 `json:"topic"`
	Level    composer.AudienceLevel `json:"audienceLevel"`
	Style    composer.VisualStyle   `json:"visualStyle"`
	Language composer.Language      `json:"language"`

	// Location - 프레젠테이션이 전달한 좌표 (없으면 GeoIP 조회 시도)
	Location *LatLng `json:"location,omitempty"`
}

// LatLng - 위치 기반 grounding bias 좌표
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
