package measure

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestArea(t *testing.T) {
	assert.Equal(t, 20.0, Area(5, 4))
	assert.Equal(t, 12.35, Area(3.8, 3.25))
	assert.Equal(t, 0.0, Area(0, 4))
	// Non-positive values are passed through, not rejected.
	assert.Equal(t, -8.0, Area(-2, 4))
}

func TestAreaRoundsAndCommutes(t *testing.T) {
	faker := gofakeit.New(11)
	for i := 0; i < 1000; i++ {
		a := faker.Float64Range(0, 50)
		b := faker.Float64Range(0, 50)
		assert.Equal(t, math.Round(a*b*100)/100, Area(a, b))
		assert.Equal(t, Area(a, b), Area(b, a))
	}
}

func TestAreaFromInput(t *testing.T) {
	area, ok := AreaFromInput("4.5", "3")
	assert.True(t, ok)
	assert.Equal(t, 13.5, area)

	area, ok = AreaFromInput("4,5", " 3 ")
	assert.True(t, ok)
	assert.Equal(t, 13.5, area)

	_, ok = AreaFromInput("", "3")
	assert.False(t, ok)

	_, ok = AreaFromInput("4", "ширина")
	assert.False(t, ok)

	_, ok = AreaFromInput("NaN", "2")
	assert.False(t, ok)
}

func TestRoomName(t *testing.T) {
	assert.Equal(t, "Гостиная", RoomName("  гостиная "))
	assert.Equal(t, "Детская Комната", RoomName("детская   комната"))
	assert.Equal(t, "", RoomName("   "))
}
