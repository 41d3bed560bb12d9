package viewer

import (
	"seatlab/internal/layout"
	"seatlab/internal/scene"
)

// Appearance is the derived visual state of a seat: its fill, whether the
// booked darkening was applied, and whether the customer viewer accepts
// pointer input on it.
type Appearance struct {
	Fill        string
	Darkened    bool
	Interactive bool
}

// ComputeAppearance maps (category, booking status) to a rendered
// appearance. A seat whose category id resolves to no known category is
// unconfigured: neutral fill and never interactive, even while available.
// Booked statuses darken the base fill and disable interaction.
func ComputeAppearance(seat *scene.Object, categories map[string]layout.Category) Appearance {
	cat, validCategory := categories[seat.Category]
	if seat.Category == "" {
		validCategory = false
	}

	fill := scene.UnconfiguredSeatFill
	if validCategory {
		fill = cat.Color
	}

	darkened := seat.Status.IsBooked()
	if darkened {
		fill = Darken(fill, DarkenFactor)
	}

	return Appearance{
		Fill:        fill,
		Darkened:    darkened,
		Interactive: validCategory && seat.Status == scene.StatusAvailable,
	}
}

// ApplyAppearance writes the derived appearance onto the seat object. The
// derived price is refreshed from the category table; the authoritative
// price always lives on the category.
func ApplyAppearance(seat *scene.Object, categories map[string]layout.Category) Appearance {
	app := ComputeAppearance(seat, categories)
	seat.Fill = app.Fill
	seat.Evented = app.Interactive
	if cat, ok := categories[seat.Category]; ok {
		seat.Price = cat.Price
	} else {
		seat.Price = 0
	}
	return app
}

// RestyleSeats re-derives the appearance of every seat on the scene. Called
// whenever category or status data changes and after a layout (re)load,
// never per drag frame.
func RestyleSeats(s *scene.Scene, categories map[string]layout.Category) {
	for _, seat := range s.Seats() {
		ApplyAppearance(seat, categories)
	}
}
