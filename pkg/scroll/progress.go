// Package scroll maps element geometry and scroll position onto the values
// the front end animates: progress, transforms, opacity and colors.
package scroll

import (
	"math"
	"sort"
)

// Rect is the part of an element's bounding box the effects care about.
// Top is relative to the viewport top, as returned by getBoundingClientRect.
type Rect struct {
	Top    float64
	Height float64
}

func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Progress is 0 when the element's top enters the bottom of the viewport and
// 1 when its bottom leaves the top.
func Progress(r Rect, viewport float64) float64 {
	total := viewport + r.Height
	if total <= 0 {
		return 0
	}
	return Clamp01((viewport - r.Top) / total)
}

// PinnedProgress is 0 when the element's top reaches the viewport top and 1
// when its bottom does.
func PinnedProgress(r Rect) float64 {
	if r.Height <= 0 {
		return 0
	}
	return Clamp01(-r.Top / r.Height)
}

// Interpolate maps p through piecewise-linear keyframes. stops must be
// ascending and the same length as values. Outside the stops the edge value
// is held.
func Interpolate(p float64, stops, values []float64) float64 {
	if len(stops) == 0 || len(stops) != len(values) {
		return 0
	}
	i, t := segment(p, stops)
	if t < 0 {
		return values[i]
	}
	return lerp(values[i], values[i+1], t)
}

// segment returns the keyframe index p falls in and the position inside it.
// t is negative when p is clamped to a single keyframe.
func segment(p float64, stops []float64) (int, float64) {
	last := len(stops) - 1
	if p <= stops[0] {
		return 0, -1
	}
	if p >= stops[last] {
		return last, -1
	}
	i := sort.SearchFloat64s(stops, p)
	if stops[i] == p {
		return i, -1
	}
	i--
	span := stops[i+1] - stops[i]
	if span <= 0 {
		return i + 1, -1
	}
	return i, (p - stops[i]) / span
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RevealCount is how many of total characters are highlighted at p.
func RevealCount(p float64, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(Clamp01(p) * float64(total)))
}

// Marquee wraps a running offset into (-width, 0] so a track rendered twice
// side by side loops seamlessly.
func Marquee(offset, width float64) float64 {
	if width <= 0 {
		return 0
	}
	x := math.Mod(offset, width)
	if x < 0 {
		x += width
	}
	if x == 0 {
		return 0
	}
	return -x
}
