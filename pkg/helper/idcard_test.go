package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIDCard(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"x check code", "11010519491231002X", true},
		{"lower case x", "11010519491231002x", true},
		{"digit check code", "320106200002290019", true},
		{"legacy 15 digit", "440304900307123", true},
		{"padded", " 44030419900307123X ", true},
		{"wrong check code", "110105194912310021", false},
		{"unknown province", "990105194912310023", false},
		{"not a leap year", "320106200102290016", false},
		{"before 1900", "110105189912310023", false},
		{"future", "110105300001010022", false},
		{"letters", "11010519491231A02X", false},
		{"too short", "1101051949", false},
		{"legacy with letter", "44030490030712X", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateIDCard(tt.id))
		})
	}
}

func TestIDCardFields(t *testing.T) {
	birth, err := IDCardBirthday("11010519491231002X")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1949, 12, 31, 0, 0, 0, 0, time.UTC), birth)

	birth, err = IDCardBirthday("440304900307123")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 3, 7, 0, 0, 0, 0, time.UTC), birth)

	gender, err := IDCardGender("11010519491231002X")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, gender)

	gender, err = IDCardGender("440304900307123")
	require.NoError(t, err)
	assert.Equal(t, GenderMale, gender)

	_, err = IDCardBirthday("123")
	assert.ErrorIs(t, err, ErrInvalidIDCard)
	_, err = IDCardGender("123")
	assert.ErrorIs(t, err, ErrInvalidIDCard)
}

func TestMaskIDCard(t *testing.T) {
	assert.Equal(t, "110105********002X", MaskIDCard("11010519491231002X"))
	assert.Equal(t, "440304*****7123", MaskIDCard("440304900307123"))
	assert.Equal(t, "******", MaskIDCard("123456"))
}

func TestDesensitize(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		start  int
		length int
		want   string
	}{
		{"phone", "13812345678", 3, 4, "138****5678"},
		{"to end", "secret", 2, 0, "se****"},
		{"negative start", "13812345678", -4, 4, "1381234****"},
		{"runes", "张三丰", 1, 1, "张*丰"},
		{"clamped", "abc", 1, 10, "a**"},
		{"past end", "abc", 5, 1, "abc"},
		{"far negative", "abc", -10, 1, "*bc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Desensitize(tt.s, tt.start, tt.length))
		})
	}
}
