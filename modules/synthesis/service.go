package synthesis

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"infograph-server/modules/common/gemini"
	"infograph-server/modules/common/utils"
)

// ModelNames - enum 모델을 실제 Gemini 모델명으로 매핑
type ModelNames struct {
	Flash  string
	Pro    string
	Imagen string
}

type Service struct {
	backend gemini.Backend
	models  ModelNames

	// webpQuality > 0 이면 PNG 결과를 WebP로 재압축 (히스토리 메모리 절감)
	webpQuality float32
}

// NewService - 이미지 합성 어댑터 생성
func NewService(backend gemini.Backend, models ModelNames, webpQuality float32) *Service {
	return &Service{
		backend:     backend,
		models:      models,
		webpQuality: webpQuality,
	}
}

// Synthesize - 프롬프트로 이미지 생성, data URL 반환
// imagen은 전용 생성 API, flash/pro는 멀티모달 생성 API 사용
// imageSize는 pro에만 적용됨
func (s *Service) Synthesize(ctx context.Context, prompt string, model ImageModel, ratio AspectRatio, size ImageSize) (string, error) {
	log.Printf("🎨 [Synthesis] Generating - model: %s, ratio: %s, size: %s", model, ratio, size)

	if model == ModelImagen {
		return s.generateWithImagen(ctx, prompt, ratio)
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	return s.generateWithGemini(ctx, model, parts, ratio, size)
}

// Edit - 기존 이미지 + 지시문으로 수정본 생성
// imagen은 편집 연산이 없어서 재서술 프롬프트로 Synthesize에 위임 (점진 편집 아님)
func (s *Service) Edit(ctx context.Context, prevDataURL, instruction string, model ImageModel, ratio AspectRatio) (string, error) {
	if model == ModelImagen {
		return s.Synthesize(ctx, imagenEditPrefix+instruction, model, ratio, "")
	}

	// data URL 접두사를 떼고 인라인 바이너리로 재전송
	imageData, mimeType, err := utils.DecodeDataURL(prevDataURL)
	if err != nil {
		return "", fmt.Errorf("failed to decode previous image: %w", err)
	}

	log.Printf("✏️  [Synthesis] Editing - model: %s, ratio: %s, input: %s %d bytes",
		model, ratio, mimeType, len(imageData))

	parts := []*genai.Part{
		genai.NewPartFromText(instruction),
		genai.NewPartFromBytes(imageData, mimeType),
	}
	return s.generateWithGemini(ctx, model, parts, ratio, "")
}

// generateWithGemini - flash/pro 공통 멀티모달 생성 경로
func (s *Service) generateWithGemini(ctx context.Context, model ImageModel, parts []*genai.Part, ratio AspectRatio, size ImageSize) (string, error) {
	modelName := s.models.Flash
	imageConfig := &genai.ImageConfig{AspectRatio: string(ratio)}

	if model == ModelPro {
		modelName = s.models.Pro
		if size != "" {
			imageConfig.ImageSize = string(size)
		}
	}

	content := &genai.Content{Parts: parts}
	result, err := s.backend.GenerateContent(
		ctx,
		modelName,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{ImageConfig: imageConfig},
	)
	if err != nil {
		return "", err
	}

	// 응답에서 첫 번째 인라인 이미지 파트 추출
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return s.wrapImage(part.InlineData.Data, part.InlineData.MIMEType), nil
			}
		}
	}

	return "", gemini.ErrNoImage
}

// generateWithImagen - 전용 이미지 모델 경로 (단일 이미지, imageSize 무시)
func (s *Service) generateWithImagen(ctx context.Context, prompt string, ratio AspectRatio) (string, error) {
	result, err := s.backend.GenerateImages(ctx, s.models.Imagen, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    string(ratio),
	})
	if err != nil {
		return "", err
	}

	for _, generated := range result.GeneratedImages {
		if generated.Image != nil && len(generated.Image.ImageBytes) > 0 {
			mimeType := generated.Image.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return s.wrapImage(generated.Image.ImageBytes, mimeType), nil
		}
	}

	return "", gemini.ErrNoImage
}

// wrapImage - 바이너리를 data URL로 래핑 (가능하면 WebP 재압축)
func (s *Service) wrapImage(data []byte, mimeType string) string {
	if s.webpQuality > 0 && mimeType == "image/png" {
		if webpData, err := utils.ConvertPNGToWebP(data, s.webpQuality); err == nil && len(webpData) < len(data) {
			log.Printf("🔄 [Synthesis] PNG → WebP: %d → %d bytes", len(data), len(webpData))
			return utils.ToDataURL("image/webp", webpData)
		}
	}
	return utils.ToDataURL(mimeType, data)
}
