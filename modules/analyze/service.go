package analyze

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"infograph-server/modules/common/gemini"
	"infograph-server/modules/common/utils"
)

// Report - 이미지 분석 결과
type Report struct {
	ReportText     string    `json:"reportText"`
	SourceImageURL string    `json:"sourceImage"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Service struct {
	backend   gemini.Backend
	textModel string
}

// NewService - 이미지 분석 서비스 생성
func NewService(backend gemini.Backend, textModel string) *Service {
	return &Service{backend: backend, textModel: textModel}
}

// Analyze - 업로드 이미지 + 질문으로 분석 리포트 생성
func (s *Service) Analyze(ctx context.Context, imageDataURL, question, extraContext string) (*Report, error) {
	imageData, mimeType, err := utils.DecodeDataURL(imageDataURL)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image: %w", err)
	}

	var promptBuilder strings.Builder
	promptBuilder.WriteString("Analyze the attached image and answer in clear prose.\n\n")
	if question != "" {
		promptBuilder.WriteString("Question: " + question + "\n")
	} else {
		promptBuilder.WriteString("Describe what the image shows and explain its key elements.\n")
	}
	if extraContext != "" {
		promptBuilder.WriteString("Additional context: " + extraContext + "\n")
	}

	log.Printf("🔬 [Analyze] Analyzing image: %s, %d bytes", mimeType, len(imageData))

	content := &genai.Content{Parts: []*genai.Part{
		genai.NewPartFromText(promptBuilder.String()),
		genai.NewPartFromBytes(imageData, mimeType),
	}}

	resp, err := s.backend.GenerateContent(ctx, s.textModel, []*genai.Content{content}, nil)
	if err != nil {
		return nil, fmt.Errorf("image analysis failed: %w", err)
	}

	return &Report{
		ReportText:     resp.Text(),
		SourceImageURL: imageDataURL,
		CreatedAt:      time.Now(),
	}, nil
}
