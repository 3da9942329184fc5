package utils

import "encoding/binary"

// DecodePCM16 - 16bit little-endian mono PCM을 [-1, 1) 범위의 float 샘플로 변환
// TTS 응답(24kHz raw PCM)을 재생 가능한 형태로 정규화할 때 사용
func DecodePCM16(data []byte) []float32 {
	sampleCount := len(data) / 2
	samples := make([]float32, sampleCount)
	for i := 0; i < sampleCount; i++ {
		raw := int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
		samples[i] = float32(raw) / 32768.0
	}
	return samples
}
