package scroll

import "math"

// VideoFrame is the sticky video's transform at a given progress.
type VideoFrame struct {
	Scale        float64
	TranslateX   float64 // percent
	TranslateY   float64 // percent
	BorderRadius float64 // px
	TextOpacity  float64
	// Captions fade in one after the other past the middle of the section.
	FirstCaption  bool
	SecondCaption bool
}

// StickyVideo shrinks the video toward the top right as p goes 0..1. The
// horizontal shift only applies on desktop layouts.
func StickyVideo(p float64, desktop bool) VideoFrame {
	p = Clamp01(p)

	f := VideoFrame{
		Scale:         math.Max(1-p*0.55, 0.45),
		TranslateY:    p * -25,
		BorderRadius:  16 + p*20,
		TextOpacity:   math.Min(math.Max(0, (p-0.3)/0.7)*1.5, 1),
		FirstCaption:  p > 0.5,
		SecondCaption: p > 0.6,
	}
	if desktop {
		f.TranslateX = p * 35
	}
	return f
}

// HeroFrame holds the hero grid transforms. TranslateX drives the odd rows and
// TranslateXReverse the even one.
type HeroFrame struct {
	TranslateX        float64
	TranslateXReverse float64
	RotateX           float64
	RotateZ           float64
	TranslateY        float64
	Opacity           float64
}

var introStops = []float64{0, 0.2}

// Parallax maps the pinned hero progress onto its transforms. The tilt and
// fade settle within the first 20% while the rows keep sliding.
func Parallax(p float64) HeroFrame {
	return HeroFrame{
		TranslateX:        Interpolate(p, []float64{0, 1}, []float64{0, 1000}),
		TranslateXReverse: Interpolate(p, []float64{0, 1}, []float64{0, -1000}),
		RotateX:           Interpolate(p, introStops, []float64{15, 0}),
		Opacity:           Interpolate(p, introStops, []float64{0.2, 1}),
		RotateZ:           Interpolate(p, introStops, []float64{20, 0}),
		TranslateY:        Interpolate(p, introStops, []float64{-700, 500}),
	}
}
