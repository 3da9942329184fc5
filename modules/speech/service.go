package speech

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"infograph-server/modules/common/gemini"
)

// TTS 출력 포맷: 24kHz 16bit little-endian mono PCM
const (
	ttsSampleRate = 24000
	ttsVoiceName  = "Kore"
)

// Audio - 음성 합성 결과
type Audio struct {
	Data       []byte `json:"-"`
	MimeType   string `json:"mimeType"`
	SampleRate int    `json:"sampleRate"`
}

type Service struct {
	backend   gemini.Backend
	textModel string
	ttsModel  string
}

// NewService - 음성 변환 서비스 생성
func NewService(backend gemini.Backend, textModel, ttsModel string) *Service {
	return &Service{backend: backend, textModel: textModel, ttsModel: ttsModel}
}

// Transcribe - 오디오 바이너리를 텍스트로 변환
func (s *Service) Transcribe(ctx context.Context, audioData []byte, mimeType string) (string, error) {
	if len(audioData) == 0 {
		return "", fmt.Errorf("audio data is required")
	}

	log.Printf("🎤 [Speech] Transcribing: %s, %d bytes", mimeType, len(audioData))

	content := &genai.Content{Parts: []*genai.Part{
		genai.NewPartFromText("Transcribe the spoken audio verbatim. Reply with the transcription only."),
		genai.NewPartFromBytes(audioData, mimeType),
	}}

	resp, err := s.backend.GenerateContent(ctx, s.textModel, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text(), nil
}

// Synthesize - 텍스트를 음성(raw PCM16)으로 변환
func (s *Service) Synthesize(ctx context.Context, text string) (*Audio, error) {
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	log.Printf("🔊 [Speech] Synthesizing %d chars", len(text))

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: ttsVoiceName},
			},
		},
	}

	resp, err := s.backend.GenerateContent(ctx, s.ttsModel, genai.Text(text), config)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	// 첫 번째 인라인 오디오 파트 추출
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "audio/pcm"
				}
				return &Audio{
					Data:       part.InlineData.Data,
					MimeType:   mimeType,
					SampleRate: ttsSampleRate,
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("no audio produced")
}
