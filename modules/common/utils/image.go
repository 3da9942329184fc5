package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// ToDataURL - 바이너리 이미지/오디오를 data URL로 래핑
func ToDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// ExtractBase64Data - data URL에서 base64 데이터 부분만 추출
func ExtractBase64Data(dataURL string) string {
	if strings.Contains(dataURL, ",") {
		parts := strings.SplitN(dataURL, ",", 2)
		if len(parts) == 2 {
			return parts[1]
		}
	}
	return dataURL
}

// ExtractMimeType - data URL에서 MIME 타입 추출 (기본값: image/png)
func ExtractMimeType(dataURL string) string {
	if strings.HasPrefix(dataURL, "data:") {
		parts := strings.SplitN(dataURL, ";", 2)
		if len(parts) == 2 {
			return strings.TrimPrefix(parts[0], "data:")
		}
	}
	return "image/png"
}

// DecodeDataURL - data URL을 (바이너리, MIME 타입)으로 분해
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	decoded, err := base64.StdEncoding.DecodeString(ExtractBase64Data(dataURL))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64: %w", err)
	}
	return decoded, ExtractMimeType(dataURL), nil
}

// ConvertPNGToWebP - PNG 바이너리를 WebP로 변환 (히스토리 메모리 절감용)
func ConvertPNGToWebP(pngData []byte, quality float32) ([]byte, error) {
	// PNG 디코딩
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}

	// WebP 인코딩
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	return webpBuffer.Bytes(), nil
}
