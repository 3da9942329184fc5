package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Backend - 서비스 레이어가 의존하는 Gemini 호출 창구
// 테스트에서 mock으로 교체 가능
type Backend interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// OneShot - 호출할 때마다 새 genai 클라이언트를 생성하는 Backend 구현체
// API 키를 캐싱하지 않으므로 키 교체 시 프로세스 재시작이 필요 없음
type OneShot struct {
	apiKey string
}

// NewOneShot - API 키로 OneShot 백엔드 생성
func NewOneShot(apiKey string) *OneShot {
	return &OneShot{apiKey: apiKey}
}

// newClient - 매 호출마다 새 클라이언트 생성
func (o *OneShot) newClient(ctx context.Context) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  o.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Genai client: %w", err)
	}
	return client, nil
}

// GenerateContent - 멀티모달 컨텐츠 생성 호출
func (o *OneShot) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := o.newClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.Models.GenerateContent(ctx, model, contents, config)
}

// GenerateImages - Imagen 전용 이미지 생성 호출
func (o *OneShot) GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	client, err := o.newClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.Models.GenerateImages(ctx, model, prompt, config)
}
