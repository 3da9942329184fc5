package synthesis

// ImageModel - 이미지 생성 모델 패밀리 (3-way 분기)
type ImageModel string

const (
	// ModelFlash - 빠른 멀티모달 모델 (imageSize 미지원)
	ModelFlash ImageModel = "flash"
	// ModelPro - 고품질 멀티모달 모델 (imageSize 지원)
	ModelPro ImageModel = "pro"
	// ModelImagen - 전용 이미지 모델 (편집 미지원, imageSize 무시)
	ModelImagen ImageModel = "imagen4"
)

// AspectRatio - 지원하는 이미지 비율
type AspectRatio string

const (
	RatioLandscape AspectRatio = "16:9"
	RatioPortrait  AspectRatio = "9:16"
	RatioSquare    AspectRatio = "1:1"
)

// ImageSize - 출력 해상도 (pro 모델만 적용)
type ImageSize string

const (
	Size1K ImageSize = "1K"
	Size2K ImageSize = "2K"
	Size4K ImageSize = "4K"
)

// Valid - 알려진 모델인지 확인
func (m ImageModel) Valid() bool {
	switch m {
	case ModelFlash, ModelPro, ModelImagen:
		return true
	}
	return false
}

// Imagen에는 진짜 편집 연산이 없어서 재서술 프롬프트로 새로 생성함
const imagenEditPrefix = "Modified version of previous scene: "
