// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"strconv"
	"strings"
)

var romanNumerals = []string{"i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x", "xi", "xii", "xiii", "xiv", "xv"}

// Roman returns the lowercase roman numeral for n in 1..15 and the decimal
// form outside that range.
func Roman(n int) string {
	if n >= 1 && n <= len(romanNumerals) {
		return romanNumerals[n-1]
	}
	return strconv.Itoa(n)
}

// UpperRoman is Roman in upper case.
func UpperRoman(n int) string {
	return strings.ToUpper(Roman(n))
}

// Letter returns the lowercase letter for n in 1..26 and the decimal form
// outside that range.
func Letter(n int) string {
	if n >= 1 && n <= 26 {
		return string(rune('a' + n - 1))
	}
	return strconv.Itoa(n)
}

// UpperLetter is Letter in upper case.
func UpperLetter(n int) string {
	return strings.ToUpper(Letter(n))
}
