package gemini

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// 사용자에게 노출되는 에러 분류
var (
	// ErrKeyRequired - 유료 키/결제 설정이 필요한 경우 (403, 404 계열)
	ErrKeyRequired = errors.New("billing or a valid API key is required")
	// ErrUnavailable - 일시적인 백엔드 오류 (재시도는 사용자 몫)
	ErrUnavailable = errors.New("the service is temporarily unavailable, please try again")
	// ErrNoImage - 응답에 이미지 파트가 없는 경우
	ErrNoImage = errors.New("no image produced")
)

// Classify - 백엔드 에러를 사용자 노출용 에러로 분류
// 403/404 (권한/엔터티 없음) → ErrKeyRequired, 나머지는 ErrUnavailable
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 403 || apiErr.Code == 404 {
			return ErrKeyRequired
		}
		return ErrUnavailable
	}

	// SDK가 APIError로 감싸지 않는 경로 대비
	msg := err.Error()
	if strings.Contains(msg, "PERMISSION_DENIED") || strings.Contains(msg, "NOT_FOUND") {
		return ErrKeyRequired
	}
	return ErrUnavailable
}

// HTTPStatus - 분류된 백엔드 에러의 HTTP 상태 코드
// 모든 엔드포인트가 같은 매핑을 쓴다 (키/결제 → 403, 나머지 → 502)
func HTTPStatus(err error) int {
	if errors.Is(err, ErrKeyRequired) {
		return http.StatusForbidden
	}
	return http.StatusBadGateway
}
