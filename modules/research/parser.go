package research

import (
	"strings"

	"google.golang.org/genai"
)

// 팩트는 최대 5개까지만 유지
const maxFacts = 5

// parseReply - 백엔드 텍스트 응답을 (팩트 목록, 이미지 프롬프트)로 파싱
// 템플릿이 깨져 있어도 항상 폴백으로 복구 (에러 없음)
func parseReply(text, topic, levelInstruction, styleInstruction string) ([]string, string) {
	facts := []string{}
	imagePrompt := ""

	factsIdx := strings.Index(text, factsMarker)
	promptIdx := strings.Index(text, imagePromptMarker)

	if factsIdx >= 0 {
		factsEnd := len(text)
		if promptIdx > factsIdx {
			factsEnd = promptIdx
		}
		factsBlock := text[factsIdx+len(factsMarker) : factsEnd]

		for _, line := range strings.Split(factsBlock, "\n") {
			fact := stripBullet(line)
			if fact == "" {
				continue
			}
			facts = append(facts, fact)
			if len(facts) >= maxFacts {
				break
			}
		}
	}

	if promptIdx >= 0 {
		imagePrompt = strings.TrimSpace(text[promptIdx+len(imagePromptMarker):])
	}
	if imagePrompt == "" {
		imagePrompt = buildFallbackPrompt(topic, levelInstruction, styleInstruction)
	}

	return facts, imagePrompt
}

// stripBullet - 불릿 마커(-, *, •) 제거 후 공백 정리
func stripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):])
		}
	}
	// 내용 없는 단독 마커 라인
	if trimmed == "-" || trimmed == "*" || trimmed == "•" {
		return ""
	}
	return trimmed
}

// extractCitations - grounding chunk에서 출처 추출
// web은 제목 그대로, maps는 "Map: " 접두사, 제목/URL 없는 항목은 버림
// URL 기준 중복 제거 (먼저 본 제목 유지)
func extractCitations(resp *genai.GenerateContentResponse) []Citation {
	citations := []Citation{}
	seen := map[string]bool{}

	if resp == nil {
		return citations
	}

	for _, candidate := range resp.Candidates {
		if candidate.GroundingMetadata == nil {
			continue
		}

		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			var title, url string

			switch {
			case chunk.Web != nil:
				title = chunk.Web.Title
				url = chunk.Web.URI
			case chunk.Maps != nil:
				if chunk.Maps.Title != "" {
					title = "Map: " + chunk.Maps.Title
				}
				url = chunk.Maps.URI
			}

			if title == "" || url == "" || seen[url] {
				continue
			}
			seen[url] = true
			citations = append(citations, Citation{Title: title, URL: url})
		}
	}

	return citations
}
