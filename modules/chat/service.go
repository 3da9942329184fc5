package chat

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"infograph-server/modules/common/gemini"
)

type Service struct {
	backend   gemini.Backend
	textModel string
}

// NewService - 단발성 채팅 서비스 생성 (대화 히스토리는 유지하지 않음)
func NewService(backend gemini.Backend, textModel string) *Service {
	return &Service{backend: backend, textModel: textModel}
}

// Send - 메시지 1건을 보내고 텍스트 응답을 받음
func (s *Service) Send(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("message is required")
	}

	resp, err := s.backend.GenerateContent(ctx, s.textModel, genai.Text(message), nil)
	if err != nil {
		return "", fmt.Errorf("chat failed: %w", err)
	}
	return resp.Text(), nil
}
