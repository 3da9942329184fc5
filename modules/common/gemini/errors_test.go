package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	t.Run("403은 키/결제 에러", func(t *testing.T) {
		err := genai.APIError{Code: 403, Message: "permission denied"}
		assert.ErrorIs(t, Classify(err), ErrKeyRequired)
	})

	t.Run("404도 키/결제 에러 (entity not found 계열)", func(t *testing.T) {
		err := genai.APIError{Code: 404, Message: "model not found"}
		assert.ErrorIs(t, Classify(err), ErrKeyRequired)
	})

	t.Run("429 등 나머지 API 에러는 일시 장애", func(t *testing.T) {
		err := genai.APIError{Code: 429, Message: "quota exceeded"}
		assert.ErrorIs(t, Classify(err), ErrUnavailable)
	})

	t.Run("래핑된 에러도 분류됨", func(t *testing.T) {
		wrapped := fmt.Errorf("research failed: %w", genai.APIError{Code: 403})
		assert.ErrorIs(t, Classify(wrapped), ErrKeyRequired)
	})

	t.Run("일반 에러는 일시 장애", func(t *testing.T) {
		assert.ErrorIs(t, Classify(errors.New("connection reset")), ErrUnavailable)
	})

	t.Run("상태 문자열 기반 폴백", func(t *testing.T) {
		assert.ErrorIs(t, Classify(errors.New("rpc error: PERMISSION_DENIED")), ErrKeyRequired)
	})

	t.Run("nil은 nil", func(t *testing.T) {
		assert.NoError(t, Classify(nil))
	})
}

func TestHTTPStatus(t *testing.T) {
	t.Run("키/결제 에러는 403", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrKeyRequired))
	})

	t.Run("래핑돼도 403", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, HTTPStatus(fmt.Errorf("chat failed: %w", ErrKeyRequired)))
	})

	t.Run("나머지 백엔드 에러는 502", func(t *testing.T) {
		assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrUnavailable))
		assert.Equal(t, http.StatusBadGateway, HTTPStatus(errors.New("boom")))
	})
}
