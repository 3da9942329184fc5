package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allLevels = []AudienceLevel{LevelElementary, LevelHighSchool, LevelCollege, LevelExpert}

var allStyles = []VisualStyle{
	StyleInfographic, StyleWatercolor, StyleMinimalist, StyleCartoon, StylePixelArt,
	Style3DRender, StyleBlueprint, StyleVintage, StylePhotoreal,
}

func TestComposeInstructions(t *testing.T) {
	t.Run("모든 enum 조합에서 비어 있지 않은 지시문", func(t *testing.T) {
		for _, level := range allLevels {
			for _, style := range allStyles {
				levelInstruction, styleInstruction := ComposeInstructions(level, style)
				assert.NotEmpty(t, levelInstruction, "level=%s", level)
				assert.NotEmpty(t, styleInstruction, "style=%s", style)
			}
		}
	})

	t.Run("레벨별 지시문은 서로 다름", func(t *testing.T) {
		seen := map[string]AudienceLevel{}
		for _, level := range allLevels {
			instruction, _ := ComposeInstructions(level, StyleInfographic)
			prev, dup := seen[instruction]
			assert.False(t, dup, "levels %s and %s share an instruction", prev, level)
			seen[instruction] = level
		}
	})

	t.Run("스타일별 지시문은 서로 다름", func(t *testing.T) {
		seen := map[string]VisualStyle{}
		for _, style := range allStyles {
			_, instruction := ComposeInstructions(LevelCollege, style)
			prev, dup := seen[instruction]
			assert.False(t, dup, "styles %s and %s share an instruction", prev, style)
			seen[instruction] = style
		}
	})

	t.Run("모르는 값은 기본 지시문으로 폴백", func(t *testing.T) {
		levelInstruction, styleInstruction := ComposeInstructions("quantum", "vaporwave")
		assert.Equal(t, DefaultLevelInstruction, levelInstruction)
		assert.Equal(t, DefaultStyleInstruction, styleInstruction)
	})

	t.Run("빈 값도 폴백", func(t *testing.T) {
		levelInstruction, styleInstruction := ComposeInstructions("", "")
		assert.Equal(t, DefaultLevelInstruction, levelInstruction)
		assert.Equal(t, DefaultStyleInstruction, styleInstruction)
	})
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Korean", LanguageName(LangKorean))
	assert.Equal(t, "English", LanguageName(LangEnglish))
	// 모르는 언어 코드는 English
	assert.Equal(t, "English", LanguageName("xx"))
}
