package main

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

var (
	background = color.RGBA{R: 0x12, G: 0x14, B: 0x1a, A: 0xff}
	gridColor  = color.RGBA{R: 0x2c, G: 0x30, B: 0x3a, A: 0xff}
	fillColor  = color.RGBA{R: 0x2f, G: 0x6f, B: 0x9f, A: 0x60}
	lineColor  = color.RGBA{R: 0x7f, G: 0xd0, B: 0xff, A: 0xff}
)

// plotStyle controls the rendered image.
type plotStyle struct {
	width, height int
	// lo and hi bound the value axis.
	lo, hi    float64
	lineWidth float32
}

// plot draws values as a filled curve spanning the full image width.
func plot(values []float64, st plotStyle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, st.width, st.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	if len(values) == 0 {
		return img
	}

	xs, ys := project(values, st)
	r := vector.NewRasterizer(st.width, st.height)

	// Baseline at 0, or at the nearest edge when 0 is off the axis.
	zero := yFor(0, st)
	fillRect(r, 0, zero-0.5, float32(st.width), 1)
	r.Draw(img, img.Bounds(), image.NewUniform(gridColor), image.Point{})

	r.Reset(st.width, st.height)
	r.MoveTo(xs[0], zero)
	for i := range xs {
		r.LineTo(xs[i], ys[i])
	}
	r.LineTo(xs[len(xs)-1], zero)
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(fillColor), image.Point{})

	r.Reset(st.width, st.height)
	stroke(r, xs, ys, st.lineWidth/2)
	r.Draw(img, img.Bounds(), image.NewUniform(lineColor), image.Point{})
	return img
}

func project(values []float64, st plotStyle) (xs, ys []float32) {
	xs = make([]float32, len(values))
	ys = make([]float32, len(values))
	span := float64(st.width)
	if len(values) > 1 {
		span /= float64(len(values) - 1)
	}
	for i, v := range values {
		xs[i] = float32(float64(i) * span)
		ys[i] = yFor(v, st)
	}
	return xs, ys
}

func yFor(v float64, st plotStyle) float32 {
	frac := 0.5
	if st.hi > st.lo {
		frac = (v - st.lo) / (st.hi - st.lo)
	}
	frac = math.Min(math.Max(frac, 0), 1)
	margin := float64(st.lineWidth)
	return float32(margin + (1-frac)*(float64(st.height)-2*margin))
}

func fillRect(r *vector.Rasterizer, x, y, w, h float32) {
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.ClosePath()
}

// stroke outlines the polyline as one band of half-width hw, walking the
// upper edge forwards and the lower edge back.
func stroke(r *vector.Rasterizer, xs, ys []float32, hw float32) {
	n := len(xs)
	if n == 1 {
		fillRect(r, xs[0]-hw, ys[0]-hw, 2*hw, 2*hw)
		return
	}
	r.MoveTo(xs[0], ys[0]-hw)
	for i := 1; i < n; i++ {
		r.LineTo(xs[i], ys[i]-hw)
	}
	for i := n - 1; i >= 0; i-- {
		r.LineTo(xs[i], ys[i]+hw)
	}
	r.ClosePath()
}
