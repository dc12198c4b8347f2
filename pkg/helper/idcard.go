package helper

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalidIDCard is returned for a malformed resident ID number.
var ErrInvalidIDCard = errors.New("helper: invalid id card number")

// Gender encoded in the sequence digits of an ID number.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var (
	idWeights    = [17]int{7, 9, 10, 5, 8, 4, 2, 1, 6, 3, 7, 9, 10, 5, 8, 4, 2}
	idCheckCodes = "10X98765432"
)

// Province prefixes in use, including Hong Kong, Macao and Taiwan.
var idProvinces = map[string]bool{
	"11": true, "12": true, "13": true, "14": true, "15": true,
	"21": true, "22": true, "23": true,
	"31": true, "32": true, "33": true, "34": true, "35": true, "36": true, "37": true,
	"41": true, "42": true, "43": true, "44": true, "45": true, "46": true,
	"50": true, "51": true, "52": true, "53": true, "54": true,
	"61": true, "62": true, "63": true, "64": true, "65": true,
	"71": true, "81": true, "82": true, "91": true,
}

// ValidateIDCard reports whether id is a valid 18-digit resident ID
// number, or a 15-digit legacy number.
func ValidateIDCard(id string) bool {
	_, err := normalizeIDCard(id)
	return err == nil
}

// IDCardBirthday returns the date of birth encoded in id.
func IDCardBirthday(id string) (time.Time, error) {
	norm, err := normalizeIDCard(id)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse("20060102", norm[6:14])
}

// IDCardGender returns the gender encoded in id: odd sequence digits are
// male.
func IDCardGender(id string) (Gender, error) {
	norm, err := normalizeIDCard(id)
	if err != nil {
		return "", err
	}
	if (norm[16]-'0')%2 == 1 {
		return GenderMale, nil
	}
	return GenderFemale, nil
}

// normalizeIDCard validates id and returns it in 18-digit upper-case form.
func normalizeIDCard(id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))

	switch len(id) {
	case 15:
		if !allDigits(id) {
			return "", ErrInvalidIDCard
		}
		id = id[:6] + "19" + id[6:]
		id += string(idCheckCode(id))
	case 18:
		if !allDigits(id[:17]) {
			return "", ErrInvalidIDCard
		}
		if idCheckCode(id) != id[17] {
			return "", ErrInvalidIDCard
		}
	default:
		return "", ErrInvalidIDCard
	}

	if !idProvinces[id[:2]] {
		return "", ErrInvalidIDCard
	}
	birth, err := time.Parse("20060102", id[6:14])
	if err != nil || birth.Year() < 1900 || birth.After(time.Now()) {
		return "", ErrInvalidIDCard
	}
	return id, nil
}

// idCheckCode computes the ISO 7064 mod 11-2 check character over the
// first 17 digits.
func idCheckCode(id string) byte {
	sum := 0
	for i, w := range idWeights {
		sum += int(id[i]-'0') * w
	}
	return idCheckCodes[sum%11]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// MaskIDCard keeps the first six and last four characters of id and
// masks the rest. Shorter input is masked entirely.
func MaskIDCard(id string) string {
	n := utf8.RuneCountInString(id)
	if n <= 10 {
		return strings.Repeat("*", n)
	}
	return Desensitize(id, 6, n-10)
}

// Desensitize replaces length runes of s starting at start with '*'. A
// negative start counts from the end; a non-positive length masks through
// the end. Out-of-range positions are clamped.
func Desensitize(s string, start, length int) string {
	runes := []rune(s)
	n := len(runes)

	if start < 0 {
		start += n
	}
	start = max(0, min(start, n))

	end := n
	if length > 0 {
		end = min(start+length, n)
	}

	for i := start; i < end; i++ {
		runes[i] = '*'
	}
	return string(runes)
}
