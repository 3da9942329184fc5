package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Gemini API
	GeminiAPIKey          string
	GeminiTextModel       string
	GeminiFlashImageModel string
	GeminiProImageModel   string
	GeminiImagenModel     string
	GeminiTTSModel        string

	// Server
	Port string

	// Geo (위치 기반 grounding - 조회 실패해도 무시)
	GeoIPEndpoint string

	// WebP 재압축 품질 (0이면 비활성화)
	WebPQuality float32

	// 세션 유지 시간 (분)
	SessionTTLMinutes int
}

var globalConfig *Config

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	// WebP 품질 파싱
	webpQuality := float32(80) // 기본값
	if qStr := os.Getenv("WEBP_QUALITY"); qStr != "" {
		if parsed, err := strconv.ParseFloat(qStr, 32); err == nil {
			webpQuality = float32(parsed)
		}
	}

	// 세션 TTL 파싱
	sessionTTL := 120 // 기본값 (2시간)
	if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
		if parsed, err := strconv.Atoi(ttlStr); err == nil && parsed > 0 {
			sessionTTL = parsed
		}
	}

	globalConfig = &Config{
		// Gemini API
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiTextModel:       getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		GeminiFlashImageModel: getEnv("GEMINI_FLASH_IMAGE_MODEL", "gemini-2.5-flash-image"),
		GeminiProImageModel:   getEnv("GEMINI_PRO_IMAGE_MODEL", "gemini-3-pro-image-preview"),
		GeminiImagenModel:     getEnv("GEMINI_IMAGEN_MODEL", "imagen-4.0-generate-001"),
		GeminiTTSModel:        getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),

		// Server
		Port: getEnv("PORT", "8080"),

		// Geo
		GeoIPEndpoint: getEnv("GEOIP_ENDPOINT", "http://ip-api.com/json"),

		WebPQuality:       webpQuality,
		SessionTTLMinutes: sessionTTL,
	}

	// 필수 환경변수 검증
	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Text model: %s", globalConfig.GeminiTextModel)
	log.Printf("   Image models: flash=%s, pro=%s, imagen=%s",
		globalConfig.GeminiFlashImageModel, globalConfig.GeminiProImageModel, globalConfig.GeminiImagenModel)
	log.Printf("   WebP quality: %.0f, Session TTL: %dm", globalConfig.WebPQuality, globalConfig.SessionTTLMinutes)

	return globalConfig, nil
}

// GetConfig - 로드된 설정 가져오기
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - 필수 환경변수 검증
func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
