package track

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dyluth/pulse/pkg/board"
)

// Chart palette. The reprint color is the distinguishing one.
var (
	chartBackground   = color.RGBA{R: 59, G: 59, B: 59, A: 255}
	chartChainColor   = color.RGBA{R: 0x1A, G: 0xA0, B: 0xFF, A: 255}
	chartReprintColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	chartTextColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// textGutter is the horizontal room reserved for node captions.
const textGutter = 220

// WriteChart lays out the events and writes the flow chart as a PNG.
func WriteChart(w io.Writer, events []board.TrackingEvent) error {
	img := RenderChart(Layout(events))
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode flow chart: %w", err)
	}
	return nil
}

// RenderChart draws laid-out nodes onto a fresh image: connecting lines
// first, then circles, then captions. An empty layout renders a single
// "No history found." panel.
func RenderChart(nodes []Node) *image.RGBA {
	width, height := chartBounds(nodes)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), chartBackground)

	if len(nodes) == 0 {
		drawText(img, padding, padding, "No history found.")
		return img
	}

	for i, n := range nodes {
		if n.Connected && i > 0 {
			prev := nodes[i-1]
			drawLine(img, prev.X, prev.Y+nodeRadius, n.X, n.Y-nodeRadius, chartChainColor)
		}
	}

	for _, n := range nodes {
		fill := chartChainColor
		if n.Reprint {
			fill = chartReprintColor
		}
		fillCircle(img, n.X, n.Y, nodeRadius, fill)

		textX := n.X + nodeRadius + 20
		drawText(img, textX, n.Y-6, FormatEventTime(n.Event.At))
		drawText(img, textX, n.Y+7, DisplayStation(n.Event))
		drawText(img, textX, n.Y+20, DisplayPerson(n.Event))
	}

	return img
}

func chartBounds(nodes []Node) (width, height int) {
	width = padding*2 + nodeRadius*2 + textGutter
	height = padding*2 + nodeRadius*2
	for _, n := range nodes {
		if w := n.X + nodeRadius + textGutter + padding; w > width {
			width = w
		}
		if h := n.Y + nodeRadius + padding; h > height {
			height = h
		}
	}
	return width, height
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLine draws a 2px line. Chains run vertically, but reprint-adjacent
// geometry can produce short diagonals, so this handles both.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.SetRGBA(x0, y0, c)
		img.SetRGBA(x0+1, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawText(img *image.RGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(chartTextColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
