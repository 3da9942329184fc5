package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"infograph-server/modules/composer"
)

// --- Mocks ---

type mockBackend struct {
	contentCalls int
	lastModel    string
	lastConfig   *genai.GenerateContentConfig
	resp         *genai.GenerateContentResponse
	err          error
}

func (m *mockBackend) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.contentCalls++
	m.lastModel = model
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
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://src.com", Title: "Source"}},
				},
			},
		}},
	}
}

func TestService_Research(t *testing.T) {
	req := &Request{
		Topic:    "volcanoes",
		Level:    composer.LevelHighSchool,
		Style:    composer.StyleInfographic,
		Language: composer.LangEnglish,
	}

	t.Run("정상 플로우", func(t *testing.T) {
		backend := &mockBackend{resp: textResponse("FACTS:\n- lava is hot\nIMAGE_PROMPT:\nvolcano infographic")}
		service := NewService(backend, "gemini-2.5-flash", "")

		result, err := service.Research(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 1, backend.contentCalls)
		assert.Equal(t, "gemini-2.5-flash", backend.lastModel)
		assert.Equal(t, []string{"lava is hot"}, result.Facts)
		assert.Equal(t, "volcano infographic", result.ImagePrompt)
		assert.Equal(t, []Citation{{Title: "Source", URL: "https://src.com"}}, result.Citations)
	})

	t.Run("search와 maps 도구가 항상 활성화됨", func(t *testing.T) {
		backend := &mockBackend{resp: textResponse("FACTS:\n- x\nIMAGE_PROMPT:\np")}
		service := NewService(backend, "m", "")

		_, err := service.Research(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, backend.lastConfig.Tools, 2)
		assert.NotNil(t, backend.lastConfig.Tools[0].GoogleSearch)
		assert.NotNil(t, backend.lastConfig.Tools[1].GoogleMaps)
	})

	t.Run("요청 좌표가 있으면 위치 bias 설정", func(t *testing.T) {
		backend := &mockBackend{resp: textResponse("FACTS:\n- x\nIMAGE_PROMPT:\np")}
		service := NewService(backend, "m", "")

		located := *req
		located.Location = &LatLng{Latitude: 37.5, Longitude: 127.0}
		_, err := service.Research(context.Background(), &located)
		require.NoError(t, err)

		require.NotNil(t, backend.lastConfig.ToolConfig)
		require.NotNil(t, backend.lastConfig.ToolConfig.RetrievalConfig)
		latLng := backend.lastConfig.ToolConfig.RetrievalConfig.LatLng
		require.NotNil(t, latLng)
		require.NotNil(t, latLng.Latitude)
		require.NotNil(t, latLng.Longitude)
		assert.Equal(t, 37.5, *latLng.Latitude)
		assert.Equal(t, 127.0, *latLng.Longitude)
	})

	t.Run("좌표도 GeoIP도 없으면 bias 생략 (에러 아님)", func(t *testing.T) {
		backend := &mockBackend{resp: textResponse("FACTS:\n- x\nIMAGE_PROMPT:\np")}
		service := NewService(backend, "m", "") // GeoIP 비활성화

		_, err := service.Research(context.Background(), req)
		require.NoError(t, err)
		assert.Nil(t, backend.lastConfig.ToolConfig)
	})

	t.Run("백엔드 에러는 전파됨", func(t *testing.T) {
		backendErr := errors.New("quota exceeded")
		backend := &mockBackend{err: backendErr}
		service := NewService(backend, "m", "")

		_, err := service.Research(context.Background(), req)
		assert.ErrorIs(t, err, backendErr)
	})

	t.Run("템플릿 없는 응답도 성공 (폴백 프롬프트)", func(t *testing.T) {
		backend := &mockBackend{resp: textResponse("freeform text without markers")}
		service := NewService(backend, "m", "")

		result, err := service.Research(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, result.Facts)
		assert.Contains(t, result.ImagePrompt, "volcanoes")
	})
}
