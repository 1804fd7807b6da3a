package models

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestBadgeForKnownStatuses(t *testing.T) {
	cases := map[string]Badge{
		"draft":       {Label: "Черновик", Color: ColorGray},
		"measurement": {Label: "Замеры", Color: ColorBlue},
		"design":      {Label: "Дизайн", Color: ColorPurple},
		"estimate":    {Label: "Смета", Color: ColorOrange},
		"in_progress": {Label: "В работе", Color: ColorGreen},
		"completed":   {Label: "Завершён", Color: ColorEmerald},
		"cancelled":   {Label: "Отменён", Color: ColorRed},
	}

	for code, want := range cases {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, want, BadgeFor(code))
			assert.True(t, KnownStatus(code))
		})
	}
	assert.Len(t, StatusCodes, len(cases))
}

func TestBadgeForUnknownStatusFallsBack(t *testing.T) {
	assert.Equal(t, Badge{Label: "on_hold", Color: ColorGray}, BadgeFor("on_hold"))
	assert.Equal(t, Badge{Label: "", Color: ColorGray}, BadgeFor(""))
	assert.False(t, KnownStatus("on_hold"))

	faker := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		code := faker.LetterN(uint(faker.IntRange(0, 12)))
		badge := BadgeFor(code)
		assert.NotEmpty(t, badge.Color)
		if !KnownStatus(code) {
			assert.Equal(t, code, badge.Label)
		}
	}
}

func TestProjectBadgeUsesStatus(t *testing.T) {
	p := Project{Status: StatusInProgress}
	assert.Equal(t, "В работе", p.Badge().Label)
}
