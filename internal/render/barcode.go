// Package render draws label batches as printable PNG sheets: a 2x6 grid
// per page, each slot carrying the caption, a Code128 barcode, the barcode
// id and the assigned employee.
package render

import (
	"image"
	"image/color"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

var (
	barInk   = color.RGBA{A: 255}
	barFaint = color.RGBA{R: 190, G: 190, B: 190, A: 255}
	paper    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Barcode renders text as a scannable Code128 image at the requested size.
// Text the encoder cannot handle falls back to Placeholder, so rendering
// never fails.
func Barcode(text string, width, height int) image.Image {
	code, err := code128.Encode(text)
	if err != nil {
		return Placeholder(text, width, height)
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return Placeholder(text, width, height)
	}
	return scaled
}

// Placeholder draws a non-scannable stand-in for text that cannot be
// encoded: a start bar, one bar slot per character (painted black when the
// character's code point is even, left blank otherwise) and a stop bar.
// The same text always produces the same image.
func Placeholder(text string, width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, paper)
		}
	}

	slots := len(text) + 2
	barWidth := width / slots
	if barWidth < 1 {
		barWidth = 1
	}

	drawBar := func(slot int) {
		x0 := slot * barWidth
		x1 := x0 + barWidth
		if x1 > width {
			x1 = width
		}
		for y := 0; y < height; y++ {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, barInk)
			}
		}
	}

	drawBar(0)
	for i, r := range text {
		if r%2 == 0 {
			drawBar(i + 1)
		}
	}
	drawBar(slots - 1)

	return img
}
