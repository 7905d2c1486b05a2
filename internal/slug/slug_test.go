package slug

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{"empty", "", 0, ""},
		{"cyrillic words", "Привет Мир", 0, "privet-mir"},
		{"multi letter mapping", "Щука и ёжик", 0, "schuka-i-yozhik"},
		{"soft and hard signs", "Объявление о тени", 0, "obyavlenie-o-teni"},
		{"punctuation dropped", "Раскраски, для детей!", 0, "raskraski-dlya-detey"},
		{"latin diacritics", "Café Zürich", 0, "cafe-zurich"},
		{"surrounding whitespace", "   Hello   World  ", 0, "hello-world"},
		{"leading and trailing hyphens", "--a--b--", 0, "a-b"},
		{"hyphen around removed chars", "cats & dogs", 0, "cats-dogs"},
		{"underscore dropped", "snake_case", 0, "snakecase"},
		{"only symbols", "!!! ??? ***", 0, ""},
		{"unsupported script", "北京", 0, ""},
		{"truncation", "Раскраски для детей: животные", 20, "raskraski-dlya-detey"},
		{"truncation strips hyphen", "abcd efgh", 5, "abcd"},
		{"non breaking space", "a\u00a0b", 0, "a-b"},
		{"digits kept", "Top 10 раскрасок 2024", 0, "top-10-raskrasok-2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.input, tt.maxLength))
		})
	}
}

func TestMake_DefaultMaxLength(t *testing.T) {
	long := strings.Repeat("слово ", 60)

	got := Make(long, 0)

	assert.LessOrEqual(t, len(got), DefaultMaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestTransliterate(t *testing.T) {
	assert.Equal(t, "Zhuk", Transliterate("Жук"))
	assert.Equal(t, "sch", Transliterate("щ"))
	assert.Equal(t, "", Transliterate("ъь"))
	assert.Equal(t, "abc 123 !", Transliterate("abc 123 !"))
}

var cyrillicRunes = []rune("абвгдеёжзийклмнопрстуфхцчшщъыьэюяАБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ  -,.!?")

func randomCyrillic(r *rand.Rand, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = cyrillicRunes[r.IntN(len(cyrillicRunes))]
	}
	return string(out)
}

func TestMake_Properties(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-z0-9-]*$`)
	r := rand.New(rand.NewPCG(7, 42))

	for i := 0; i < 2000; i++ {
		input := randomCyrillic(r, r.IntN(80))
		maxLength := r.IntN(40)

		got := Make(input, maxLength)

		assert.Regexp(t, allowed, got, "input %q", input)
		assert.False(t, strings.HasPrefix(got, "-"), "input %q", input)
		assert.False(t, strings.HasSuffix(got, "-"), "input %q", input)
		assert.NotContains(t, got, "--", "input %q", input)
		if maxLength > 0 {
			assert.LessOrEqual(t, len(got), maxLength, "input %q", input)
		}
		if got != "" {
			assert.True(t, Valid(got), "input %q produced %q", input, got)
		}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("privet-mir"))
	assert.True(t, Valid("a1"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("-a"))
	assert.False(t, Valid("a--b"))
	assert.False(t, Valid("Privet"))
}
