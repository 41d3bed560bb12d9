package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatlab/internal/layout"
	"seatlab/internal/scene"
)

var testCategories = map[string]layout.Category{
	"vip":      {ID: "vip", Name: "VIP", Color: "#aa00ff", Price: 150},
	"standard": {ID: "standard", Name: "Standard", Color: "#00aaff", Price: 60},
}

func seatWith(category string, status scene.SeatStatus) *scene.Object {
	seat := scene.NewObject(scene.KindSeat)
	seat.Category = category
	seat.Status = status
	return seat
}

func TestDarkenIsDeterministic(t *testing.T) {
	a := Darken("#aa00ff", DarkenFactor)
	b := Darken("#aa00ff", DarkenFactor)
	assert.Equal(t, a, b)
	assert.NotEqual(t, "#aa00ff", a)
}

func TestDarkenKeepsColorsDistinguishable(t *testing.T) {
	assert.NotEqual(t,
		Darken("#aa00ff", DarkenFactor),
		Darken("#00aaff", DarkenFactor),
		"booked seats of different categories must stay tellable apart")
}

func TestDarkenParsing(t *testing.T) {
	tests := []struct {
		name, in, out string
	}{
		{"six digit", "#ffffff", "#8c8c8c"},
		{"three digit", "#fff", "#8c8c8c"},
		{"black stays black", "#000000", "#000000"},
		{"garbage unchanged", "tomato", "tomato"},
		{"empty unchanged", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, Darken(tt.in, DarkenFactor))
		})
	}
}

func TestAppearanceUsesCategoryColor(t *testing.T) {
	app := ComputeAppearance(seatWith("vip", scene.StatusAvailable), testCategories)
	assert.Equal(t, "#aa00ff", app.Fill)
	assert.False(t, app.Darkened)
	assert.True(t, app.Interactive)
}

func TestAppearanceUnconfiguredSeat(t *testing.T) {
	for _, category := range []string{"", "ghost-category"} {
		app := ComputeAppearance(seatWith(category, scene.StatusAvailable), testCategories)
		assert.Equal(t, scene.UnconfiguredSeatFill, app.Fill)
		assert.False(t, app.Interactive, "available but unconfigured seats are never clickable")
	}
}

func TestAppearanceBookedStatuses(t *testing.T) {
	base := ComputeAppearance(seatWith("vip", scene.StatusAvailable), testCategories).Fill
	for _, status := range []scene.SeatStatus{scene.StatusSold, scene.StatusHeld, scene.StatusBlocked} {
		t.Run(string(status), func(t *testing.T) {
			app := ComputeAppearance(seatWith("vip", status), testCategories)
			assert.True(t, app.Darkened)
			assert.False(t, app.Interactive, "booked seats never take input")
			assert.Equal(t, Darken(base, DarkenFactor), app.Fill)
		})
	}
}

func TestSoldSeatNeverInteractiveRegardlessOfCategory(t *testing.T) {
	for _, category := range []string{"vip", "standard", "", "ghost"} {
		app := ComputeAppearance(seatWith(category, scene.StatusSold), testCategories)
		assert.False(t, app.Interactive)
	}
}

func TestApplyAppearanceDerivesPrice(t *testing.T) {
	s := scene.New()
	seat := seatWith("vip", scene.StatusAvailable)
	require.NoError(t, s.Add(seat))

	ApplyAppearance(seat, testCategories)
	assert.Equal(t, 150.0, seat.Price)
	assert.True(t, seat.Evented)

	seat.Category = "ghost"
	ApplyAppearance(seat, testCategories)
	assert.Equal(t, 0.0, seat.Price)
	assert.False(t, seat.Evented)
}
