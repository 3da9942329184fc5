package research

import (
	"fmt"
	"strings"
)

// 응답 템플릿 마커
const (
	factsMarker       = "FACTS:"
	imagePromptMarker = "IMAGE_PROMPT:"
)

// BuildResearchPrompt - 주제 + 지시문을 grounding 리서치 프롬프트로 조립
// 백엔드가 FACTS: / IMAGE_PROMPT: 2단 템플릿으로 답하도록 강제
func BuildResearchPrompt(topic, levelInstruction, styleInstruction, languageName string) string {
	var promptBuilder strings.Builder

	promptBuilder.WriteString("You are a research assistant preparing an explanatory infographic.\n\n")
	promptBuilder.WriteString(fmt.Sprintf("Topic: %s\n\n", topic))

	promptBuilder.WriteString("[RESEARCH]\n")
	promptBuilder.WriteString("Use the web search tool for up-to-date facts. ")
	promptBuilder.WriteString("If the topic involves places, businesses, or anything local, also use the maps tool.\n\n")

	promptBuilder.WriteString("[AUDIENCE]\n")
	promptBuilder.WriteString(levelInstruction + "\n\n")

	promptBuilder.WriteString("[VISUAL STYLE]\n")
	promptBuilder.WriteString(styleInstruction + "\n\n")

	promptBuilder.WriteString(fmt.Sprintf("[LANGUAGE]\nAll text must be in %s.\n\n", languageName))

	promptBuilder.WriteString("[OUTPUT FORMAT]\n")
	promptBuilder.WriteString("Respond in EXACTLY this template, nothing else:\n\n")
	promptBuilder.WriteString(factsMarker + "\n")
	promptBuilder.WriteString("- fact 1\n")
	promptBuilder.WriteString("- fact 2\n")
	promptBuilder.WriteString("- (up to 5 short key facts)\n")
	promptBuilder.WriteString(imagePromptMarker + "\n")
	promptBuilder.WriteString("A single detailed image-generation prompt describing the infographic that presents these facts.\n")

	return promptBuilder.String()
}

// buildFallbackPrompt - 응답에 IMAGE_PROMPT: 섹션이 없을 때의 대체 프롬프트
// 파싱은 절대 실패하지 않음
func buildFallbackPrompt(topic, levelInstruction, styleInstruction string) string {
	return fmt.Sprintf(
		"An explanatory infographic about %q. %s %s",
		topic, levelInstruction, styleInstruction,
	)
}
