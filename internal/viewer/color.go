package viewer

import (
	"fmt"
	"strconv"
	"strings"
)

// DarkenFactor scales each RGB channel when a seat is rendered as booked.
// Darkening the category color, rather than painting a fixed overlay, keeps
// categories distinguishable on booked seats.
const DarkenFactor = 0.55

// Darken returns a deterministically darkened variant of a #rgb or #rrggbb
// color. Unparsable input is returned unchanged.
func Darken(hexColor string, factor float64) string {
	r, g, b, ok := parseHex(hexColor)
	if !ok {
		return hexColor
	}
	scale := func(c int) int {
		v := int(float64(c) * factor)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return v
	}
	return fmt.Sprintf("#%02x%02x%02x", scale(r), scale(g), scale(b))
}

func parseHex(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff), true
}
