// Package phone formats Russian mobile numbers for display and transfer.
package phone

import (
	"strings"
)

// Digits returns only the decimal digits of input.
func Digits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format applies the "+7 ddd ddd-dd-dd" mask to whatever digits input holds,
// so partial numbers are masked as they are typed. The first digit is the
// country prefix and is always shown as 7; digits past the eleventh are dropped.
func Format(input string) string {
	n := Digits(input)
	switch {
	case len(n) == 0:
		return ""
	case len(n) == 1:
		return "+7"
	case len(n) <= 4:
		return "+7 " + n[1:]
	case len(n) <= 7:
		return "+7 " + n[1:4] + " " + n[4:]
	case len(n) <= 9:
		return "+7 " + n[1:4] + " " + n[4:7] + "-" + n[7:]
	}
	if len(n) > 11 {
		n = n[:11]
	}
	return "+7 " + n[1:4] + " " + n[4:7] + "-" + n[7:9] + "-" + n[9:]
}

// Complete reports whether input holds a full eleven-digit number
func Complete(input string) bool {
	return len(Digits(input)) >= 11
}

// Normalize returns the eleven digits sent to the remote functions, with the
// country prefix rewritten to 7.
func Normalize(input string) string {
	n := Digits(input)
	if n == "" {
		return ""
	}
	if len(n) > 11 {
		n = n[:11]
	}
	return "7" + n[1:]
}
