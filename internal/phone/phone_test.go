package phone

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestFormatProgressiveMask(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", ""},
		{"7", "+7"},
		{"8", "+7"},
		{"79", "+7 9"},
		{"7999", "+7 999"},
		{"79991", "+7 999 1"},
		{"7999123", "+7 999 123"},
		{"79991234", "+7 999 123-4"},
		{"799912345", "+7 999 123-45"},
		{"7999123456", "+7 999 123-45-6"},
		{"79991234567", "+7 999 123-45-67"},
		{"799912345678", "+7 999 123-45-67"},
		{"89991234567", "+7 999 123-45-67"},
		{"+7 (999) 123-45-67", "+7 999 123-45-67"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(tc.in))
		})
	}
}

func TestFormatIsIdempotentOverDigits(t *testing.T) {
	faker := gofakeit.New(7)
	for i := 0; i < 500; i++ {
		in := faker.Numerify(strings.Repeat("#", faker.IntRange(0, 14)))
		once := Format(in)
		assert.Equal(t, once, Format(Digits(once)), "input %q", in)
	}
}

func TestFormatLengthNeverShrinks(t *testing.T) {
	full := "79991234567"
	prev := 0
	for i := 0; i <= len(full); i++ {
		out := Format(full[:i])
		assert.GreaterOrEqual(t, len(out), prev, "prefix %q", full[:i])
		prev = len(out)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "79991234567", Normalize("+7 999 123-45-67"))
	assert.Equal(t, "79991234567", Normalize("8 (999) 123 45 67"))
	assert.Equal(t, "", Normalize("none"))
	assert.True(t, Complete("+7 999 123-45-67"))
	assert.False(t, Complete("+7 999"))
}
