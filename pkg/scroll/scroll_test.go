package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want float64
	}{
		{name: "below viewport", rect: Rect{Top: 900, Height: 1000}, want: 0},
		{name: "top at viewport bottom", rect: Rect{Top: 800, Height: 1000}, want: 0},
		{name: "halfway", rect: Rect{Top: -100, Height: 1000}, want: 0.5},
		{name: "bottom leaves top", rect: Rect{Top: -1000, Height: 1000}, want: 1},
		{name: "gone", rect: Rect{Top: -5000, Height: 1000}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Progress(tt.rect, 800), 1e-9)
		})
	}

	assert.Equal(t, 0.0, Progress(Rect{}, 0))
}

func TestPinnedProgress(t *testing.T) {
	assert.Equal(t, 0.0, PinnedProgress(Rect{Top: 50, Height: 400}))
	assert.InDelta(t, 0.25, PinnedProgress(Rect{Top: -100, Height: 400}), 1e-9)
	assert.Equal(t, 1.0, PinnedProgress(Rect{Top: -900, Height: 400}))
	assert.Equal(t, 0.0, PinnedProgress(Rect{Top: -10, Height: 0}))
}

func TestInterpolate(t *testing.T) {
	stops := []float64{0, 0.5, 0.65, 1}
	values := []float64{0, 0, 100, 100}

	assert.Equal(t, 0.0, Interpolate(-1, stops, values))
	assert.Equal(t, 0.0, Interpolate(0.3, stops, values))
	assert.Equal(t, 0.0, Interpolate(0.5, stops, values))
	assert.InDelta(t, 50, Interpolate(0.575, stops, values), 1e-9)
	assert.Equal(t, 100.0, Interpolate(0.65, stops, values))
	assert.Equal(t, 100.0, Interpolate(2, stops, values))

	assert.Equal(t, 0.0, Interpolate(0.5, nil, nil))
	assert.Equal(t, 0.0, Interpolate(0.5, []float64{0, 1}, []float64{1}))
}

func TestHSL_ThemeOrange(t *testing.T) {
	assert.Equal(t, RGB{255, 93, 5}, HSL(21, 1, 0.51))
	assert.Equal(t, RGB{255, 255, 255}, HSL(0, 0, 1))
	assert.Equal(t, RGB{0, 0, 255}, HSL(240, 1, 0.5))
	assert.Equal(t, "rgb(255, 93, 5)", HSL(21, 1, 0.51).String())
}

func TestLerp(t *testing.T) {
	a, b := RGB{0, 0, 0}, RGB{255, 100, 10}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, RGB{128, 50, 5}, Lerp(a, b, 0.5))
	assert.Equal(t, b, Lerp(a, b, 3))
}

func TestThemeAt(t *testing.T) {
	start := ThemeAt(0)
	assert.Equal(t, RGB{249, 250, 251}, start.Background)
	assert.Equal(t, RGB{31, 41, 55}, start.Text)
	assert.Equal(t, RGB{107, 114, 128}, start.Accent)

	assert.Equal(t, start, ThemeAt(0.5))

	end := ThemeAt(0.65)
	assert.Equal(t, RGB{255, 93, 5}, end.Background)
	assert.Equal(t, RGB{255, 255, 255}, end.Text)
	assert.Equal(t, RGB{255, 255, 255}, end.Accent)
	assert.Equal(t, end, ThemeAt(1))

	mid := ThemeAt(0.575)
	assert.Equal(t, RGB{143, 148, 155}, mid.Text)
}

func TestStickyVideo(t *testing.T) {
	start := StickyVideo(0, true)
	assert.Equal(t, 1.0, start.Scale)
	assert.Equal(t, 16.0, start.BorderRadius)
	assert.Equal(t, 0.0, start.TextOpacity)
	assert.False(t, start.FirstCaption)

	end := StickyVideo(1, true)
	assert.InDelta(t, 0.45, end.Scale, 1e-9)
	assert.InDelta(t, 35, end.TranslateX, 1e-9)
	assert.InDelta(t, -25, end.TranslateY, 1e-9)
	assert.InDelta(t, 36, end.BorderRadius, 1e-9)
	assert.Equal(t, 1.0, end.TextOpacity)
	assert.True(t, end.FirstCaption)
	assert.True(t, end.SecondCaption)

	mid := StickyVideo(0.51, false)
	assert.Equal(t, 0.0, mid.TranslateX)
	assert.InDelta(t, 0.45, mid.TextOpacity, 1e-9)
	assert.True(t, mid.FirstCaption)
	assert.False(t, mid.SecondCaption)

	assert.Equal(t, 0.0, StickyVideo(0.3, true).TextOpacity)
	assert.Equal(t, StickyVideo(1, true), StickyVideo(7, true))
}

func TestRevealCount(t *testing.T) {
	assert.Equal(t, 0, RevealCount(0, 120))
	assert.Equal(t, 59, RevealCount(0.499, 120))
	assert.Equal(t, 120, RevealCount(1, 120))
	assert.Equal(t, 120, RevealCount(1.5, 120))
	assert.Equal(t, 0, RevealCount(-0.2, 120))
	assert.Equal(t, 0, RevealCount(0.5, 0))
}

func TestParallax(t *testing.T) {
	start := Parallax(0)
	assert.Equal(t, HeroFrame{RotateX: 15, RotateZ: 20, TranslateY: -700, Opacity: 0.2}, start)

	settled := Parallax(0.2)
	assert.Equal(t, 0.0, settled.RotateX)
	assert.Equal(t, 0.0, settled.RotateZ)
	assert.Equal(t, 1.0, settled.Opacity)
	assert.Equal(t, 500.0, settled.TranslateY)
	assert.InDelta(t, 200, settled.TranslateX, 1e-9)
	assert.InDelta(t, -200, settled.TranslateXReverse, 1e-9)

	mid := Parallax(0.1)
	assert.InDelta(t, 7.5, mid.RotateX, 1e-9)
	assert.InDelta(t, 0.6, mid.Opacity, 1e-9)
	assert.InDelta(t, -100, mid.TranslateY, 1e-9)

	end := Parallax(1)
	assert.Equal(t, 1000.0, end.TranslateX)
	assert.Equal(t, -1000.0, end.TranslateXReverse)
	assert.Equal(t, 500.0, end.TranslateY)
}

func TestMarquee(t *testing.T) {
	assert.Equal(t, 0.0, Marquee(0, 300))
	assert.Equal(t, -100.0, Marquee(100, 300))
	assert.Equal(t, 0.0, Marquee(300, 300))
	assert.Equal(t, -50.0, Marquee(650, 300))
	assert.Equal(t, -250.0, Marquee(-50, 300))
	assert.Equal(t, 0.0, Marquee(10, 0))
}
