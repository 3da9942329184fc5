package composer

// AudienceLevel - 생성 컨텐츠의 난이도/어조
type AudienceLevel string

const (
	LevelElementary AudienceLevel = "elementary"
	LevelHighSchool AudienceLevel = "highschool"
	LevelCollege    AudienceLevel = "college"
	LevelExpert     AudienceLevel = "expert"
)

// VisualStyle - 이미지 생성에 적용할 미적 프리셋
type VisualStyle string

const (
	StyleInfographic VisualStyle = "infographic"
	StyleWatercolor  VisualStyle = "watercolor"
	StyleMinimalist  VisualStyle = "minimalist"
	StyleCartoon     VisualStyle = "cartoon"
	StylePixelArt    VisualStyle = "pixel-art"
	Style3DRender    VisualStyle = "3d-render"
	StyleBlueprint   VisualStyle = "blueprint"
	StyleVintage     VisualStyle = "vintage"
	StylePhotoreal   VisualStyle = "photoreal"
)

// Language - 결과물 언어
type Language string

const (
	LangEnglish    Language = "en"
	LangKorean     Language = "ko"
	LangJapanese   Language = "ja"
	LangChinese    Language = "zh"
	LangSpanish    Language = "es"
	LangFrench     Language = "fr"
	LangGerman     Language = "de"
	LangPortuguese Language = "pt"
	LangRussian    Language = "ru"
	LangHindi      Language = "hi"
)

// 미지정 enum 값에 대한 기본 지시문
const (
	DefaultLevelInstruction = "Explain for a general public audience in a clear and engaging way."
	DefaultStyleInstruction = "Render as a high-quality digital illustration."
)

var levelInstructions = map[AudienceLevel]string{
	LevelElementary: "Explain for elementary school students: simple words, short sentences, friendly analogies, no jargon.",
	LevelHighSchool: "Explain for high school students: clear definitions, concrete everyday examples, light technical vocabulary.",
	LevelCollege:    "Explain for college students: precise terminology, underlying mechanisms, quantitative details where relevant.",
	LevelExpert:     "Explain for domain experts: assume prior knowledge, focus on nuance, edge cases, and current research.",
}

var styleInstructions = map[VisualStyle]string{
	StyleInfographic: "Render as a clean modern infographic with labeled sections, icons, and a clear visual hierarchy.",
	StyleWatercolor:  "Render as a soft hand-painted watercolor illustration with gentle washes and organic edges.",
	StyleMinimalist:  "Render in a minimalist flat style: limited palette, generous whitespace, simple geometric shapes.",
	StyleCartoon:     "Render as a playful cartoon with bold outlines, expressive characters, and bright colors.",
	StylePixelArt:    "Render as retro pixel art with a limited palette and crisp, blocky detail.",
	Style3DRender:    "Render as a polished 3D scene with soft studio lighting and realistic materials.",
	StyleBlueprint:   "Render as a technical blueprint: white line work on blue, annotations, and measured callouts.",
	StyleVintage:     "Render as a vintage mid-century poster with muted inks, grain, and period typography.",
	StylePhotoreal:   "Render as a photorealistic scene with natural lighting and accurate proportions.",
}

var languageNames = map[Language]string{
	LangEnglish:    "English",
	LangKorean:     "Korean",
	LangJapanese:   "Japanese",
	LangChinese:    "Chinese",
	LangSpanish:    "Spanish",
	LangFrench:     "French",
	LangGerman:     "German",
	LangPortuguese: "Portuguese",
	LangRussian:    "Russian",
	LangHindi:      "Hindi",
}

// ComposeInstructions - (난이도, 스타일)을 프롬프트 지시문 쌍으로 변환
// 닫힌 enum에 대한 전함수: 모르는 값은 기본 지시문으로 폴백
func ComposeInstructions(level AudienceLevel, style VisualStyle) (string, string) {
	levelInstruction, ok := levelInstructions[level]
	if !ok {
		levelInstruction = DefaultLevelInstruction
	}

	styleInstruction, ok := styleInstructions[style]
	if !ok {
		styleInstruction = DefaultStyleInstruction
	}

	return levelInstruction, styleInstruction
}

// LanguageName - 언어 코드를 영문 언어명으로 변환 (미지정 시 English)
func LanguageName(lang Language) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}
	return "English"
}
