package extract

import "strings"

// Visually confusable character maps for the fixed PAN slot structure
// (5 letters, 4 digits, 1 letter).
var (
	toLetter = map[byte]byte{'0': 'O', '1': 'I', '5': 'S', '8': 'B', '2': 'Z', '6': 'G'}
	toDigit  = map[byte]byte{'O': '0', 'I': '1', 'S': '5', 'B': '8', 'Z': '2', 'G': '6', 'Q': '0'}
)

// CorrectPANCode repairs common recognition confusions using the positional
// structure of a PAN. Inputs that are not exactly 10 characters are returned
// verbatim; already-valid codes come back unchanged, so correction is
// idempotent.
func CorrectPANCode(text string) string {
	if len(text) != 10 {
		return text
	}

	chars := []byte(strings.ToUpper(text))

	// Slots 0-4 must be letters
	for i := 0; i < 5; i++ {
		if isDigit(chars[i]) {
			if letter, ok := toLetter[chars[i]]; ok {
				chars[i] = letter
			}
		} else if !isLetter(chars[i]) {
			if letter, ok := toLetter[chars[i]]; ok {
				chars[i] = letter
			}
		}
	}

	// Slots 5-8 must be digits
	for i := 5; i < 9; i++ {
		if isLetter(chars[i]) {
			if digit, ok := toDigit[chars[i]]; ok {
				chars[i] = digit
			}
		} else if !isDigit(chars[i]) {
			if digit, ok := toDigit[chars[i]]; ok {
				chars[i] = digit
			}
		}
	}

	// Slot 9 must be a letter
	if isDigit(chars[9]) {
		if letter, ok := toLetter[chars[9]]; ok {
			chars[9] = letter
		}
	}

	return string(chars)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
