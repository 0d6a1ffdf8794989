package scroll

import (
	"fmt"
	"math"
)

type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// HSL converts hue in degrees, saturation and lightness in [0,1].
func HSL(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s, l = Clamp01(s), Clamp01(l)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB{R: channel(r + m), G: channel(g + m), B: channel(b + m)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(Clamp01(v) * 255))
}

func Lerp(a, b RGB, t float64) RGB {
	t = Clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(lerp(float64(x), float64(y), t)))
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// Keyframes is Interpolate for colors.
func Keyframes(p float64, stops []float64, colors []RGB) RGB {
	if len(stops) == 0 || len(stops) != len(colors) {
		return RGB{}
	}
	i, t := segment(p, stops)
	if t < 0 {
		return colors[i]
	}
	return Lerp(colors[i], colors[i+1], t)
}

var (
	themeStops = []float64{0, 0.5, 0.65, 1}

	lightGray = RGB{249, 250, 251}
	darkGray  = RGB{31, 41, 55}
	midGray   = RGB{107, 114, 128}
	white     = RGB{255, 255, 255}
	orange    = HSL(21, 1, 0.51)
)

// Theme is the set of page colors morphed while the showcase scrolls by.
type Theme struct {
	Background RGB
	Text       RGB
	Accent     RGB
}

// ThemeAt holds the light theme until halfway, switches to orange with white
// text by 65% and holds it to the end.
func ThemeAt(p float64) Theme {
	return Theme{
		Background: Keyframes(p, themeStops, []RGB{lightGray, lightGray, orange, orange}),
		Text:       Keyframes(p, themeStops, []RGB{darkGray, darkGray, white, white}),
		Accent:     Keyframes(p, themeStops, []RGB{midGray, midGray, white, white}),
	}
}
