package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockBackend struct {
	lastModel  string
	lastParts  []*genai.Part
	lastConfig *genai.GenerateContentConfig

	resp *genai.GenerateContentResponse
	err  error
}

func (m *mockBackend) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.lastModel = model
	if len(contents) > 0 {
		m.lastParts = contents[0].Parts
	}
	m.lastConfig = config
	return m.resp, m.err
}

func (m *mockBackend) GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	return nil, errors.New("not used")
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func audioResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			}},
		}},
	}
}

func TestService_Transcribe(t *testing.T) {
	t.Run("오디오 바이너리를 인라인 파트로 전송", func(t *testing.T) {
		backend := &mockBackend{resp: textResponse("hello world")}
		service := NewService(backend, "text-model", "tts-model")

		text, err := service.Transcribe(context.Background(), []byte("pcm-bytes"), "audio/webm")
		require.NoError(t, err)

		assert.Equal(t, "hello world", text)
		assert.Equal(t, "text-model", backend.lastModel)
		require.Len(t, backend.lastParts, 2)
		require.NotNil(t, backend.lastParts[1].InlineData)
		assert.Equal(t, []byte("pcm-bytes"), backend.lastParts[1].InlineData.Data)
		assert.Equal(t, "audio/webm", backend.lastParts[1].InlineData.MIMEType)
	})

	t.Run("빈 오디오는 거부", func(t *testing.T) {
		service := NewService(&mockBackend{}, "text-model", "tts-model")

		_, err := service.Transcribe(context.Background(), nil, "audio/webm")
		assert.Error(t, err)
	})
}

func TestService_Synthesize(t *testing.T) {
	t.Run("AUDIO 모달리티와 프리셋 보이스 설정", func(t *testing.T) {
		backend := &mockBackend{resp: audioResponse("audio/pcm;rate=24000", []byte("raw-pcm"))}
		service := NewService(backend, "text-model", "tts-model")

		audio, err := service.Synthesize(context.Background(), "안녕하세요")
		require.NoError(t, err)

		assert.Equal(t, "tts-model", backend.lastModel)
		require.NotNil(t, backend.lastConfig)
		assert.Equal(t, []string{"AUDIO"}, backend.lastConfig.ResponseModalities)
		assert.Equal(t, ttsVoiceName, backend.lastConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)

		assert.Equal(t, []byte("raw-pcm"), audio.Data)
		assert.Equal(t, "audio/pcm;rate=24000", audio.MimeType)
		assert.Equal(t, ttsSampleRate, audio.SampleRate)
	})

	t.Run("MIME 타입이 비면 audio/pcm으로 보정", func(t *testing.T) {
		backend := &mockBackend{resp: audioResponse("", []byte("raw-pcm"))}
		service := NewService(backend, "text-model", "tts-model")

		audio, err := service.Synthesize(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "audio/pcm", audio.MimeType)
	})

	t.Run("오디오 파트가 없으면 에러", func(t *testing.T) {
		backend := &mockBackend{resp: textResponse("text only")}
		service := NewService(backend, "text-model", "tts-model")

		_, err := service.Synthesize(context.Background(), "hi")
		assert.Error(t, err)
	})

	t.Run("빈 텍스트는 거부", func(t *testing.T) {
		service := NewService(&mockBackend{}, "text-model", "tts-model")

		_, err := service.Synthesize(context.Background(), "")
		assert.Error(t, err)
	})
}
