package speech

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func postJSON(t *testing.T, handle http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	handle(recorder, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload)))
	return recorder
}

func TestHandler_Synthesize(t *testing.T) {
	t.Run("응답에 디코딩된 샘플 수 포함", func(t *testing.T) {
		// PCM16 2샘플 (4바이트)
		pcm := []byte{0x00, 0x00, 0xFF, 0x7F}
		backend := &mockBackend{resp: audioResponse("audio/pcm", pcm)}
		handler := NewHandler(NewService(backend, "text-model", "tts-model"))

		recorder := postJSON(t, handler.Synthesize, synthesizeRequest{Text: "hello"})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp synthesizeResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, base64.StdEncoding.EncodeToString(pcm), resp.Audio)
		assert.Equal(t, ttsSampleRate, resp.SampleRate)
		assert.Equal(t, 2, resp.SampleCount)
	})

	t.Run("키 에러는 403", func(t *testing.T) {
		backend := &mockBackend{err: genai.APIError{Code: 403, Message: "permission denied"}}
		handler := NewHandler(NewService(backend, "text-model", "tts-model"))

		recorder := postJSON(t, handler.Synthesize, synthesizeRequest{Text: "hello"})
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("일시 장애는 502", func(t *testing.T) {
		backend := &mockBackend{err: genai.APIError{Code: 429, Message: "quota exceeded"}}
		handler := NewHandler(NewService(backend, "text-model", "tts-model"))

		recorder := postJSON(t, handler.Synthesize, synthesizeRequest{Text: "hello"})
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})
}

func TestHandler_Transcribe(t *testing.T) {
	t.Run("키 에러는 403", func(t *testing.T) {
		backend := &mockBackend{err: genai.APIError{Code: 403, Message: "permission denied"}}
		handler := NewHandler(NewService(backend, "text-model", "tts-model"))

		recorder := postJSON(t, handler.Transcribe, transcribeRequest{
			Audio:    base64.StdEncoding.EncodeToString([]byte("pcm")),
			MimeType: "audio/webm",
		})
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
