package research

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"infograph-server/modules/common/gemini"
	"infograph-server/modules/composer"
)

type Service struct {
	backend       gemini.Backend
	textModel     string
	geoIPEndpoint string
}

// NewService - 리서치 파이프라인 서비스 생성
func NewService(backend gemini.Backend, textModel, geoIPEndpoint string) *Service {
	return &Service{
		backend:       backend,
		textModel:     textModel,
		geoIPEndpoint: geoIPEndpoint,
	}
}

// Research - 주제를 grounding 리서치해서 (팩트, 이미지 프롬프트, 출처)를 만듦
// 백엔드 호출 실패만 에러로 전파되고 파싱은 항상 성공
func (s *Service) Research(ctx context.Context, req *Request) (*Result, error) {
	levelInstruction, styleInstruction := composer.ComposeInstructions(req.Level, req.Style)
	languageName := composer.LanguageName(req.Language)

	prompt := BuildResearchPrompt(req.Topic, levelInstruction, styleInstruction, languageName)

	// search + maps grounding 도구 활성화
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
			{GoogleMaps: &genai.GoogleMaps{}},
		},
	}

	// 위치 bias: 요청 좌표 우선, 없으면 GeoIP (둘 다 없으면 생략)
	location := req.Location
	if location == nil {
		location = lookupLocation(ctx, s.geoIPEndpoint)
	}
	if location != nil {
		config.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(location.Latitude),
					Longitude: genai.Ptr(location.Longitude),
				},
			},
		}
	}

	log.Printf("🔍 [Research] Topic: %s (level=%s, style=%s, lang=%s, geo=%v)",
		truncateString(req.Topic, 60), req.Level, req.Style, req.Language, location != nil)

	resp, err := s.backend.GenerateContent(ctx, s.textModel, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("grounded research failed: %w", err)
	}

	facts, imagePrompt := parseReply(resp.Text(), req.Topic, levelInstruction, styleInstruction)
	citations := extractCitations(resp)

	log.Printf("✅ [Research] Done: %d facts, %d citations", len(facts), len(citations))

	return &Result{
		ImagePrompt: imagePrompt,
		Facts:       facts,
		Citations:   citations,
	}, nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
