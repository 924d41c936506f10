package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dyluth/pulse/internal/labels"
)

// Slot geometry, in pixels. A sheet is 2 columns by 6 rows.
const (
	slotWidth   = 400
	slotHeight  = 160
	sheetMargin = 24
)

// SheetSize returns the pixel dimensions of one rendered page.
func SheetSize() (width, height int) {
	return labels.PageColumns*slotWidth + 2*sheetMargin,
		labels.PageRows*slotHeight + 2*sheetMargin
}

// Sheet renders one page of labels as a printable grid. Slots fill row by
// row, left box then right, matching sequence order within the page. The
// distribution may be nil; slots then carry no employee annotation.
func Sheet(page []labels.Label, dist *labels.Distribution) *image.RGBA {
	width, height := SheetSize()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, paper)
		}
	}

	for i, label := range page {
		if i >= labels.PageCapacity {
			break
		}
		col := i % labels.PageColumns
		row := i / labels.PageColumns
		drawSlot(img, sheetMargin+col*slotWidth, sheetMargin+row*slotHeight, label, dist)
	}

	return img
}

func drawSlot(img *image.RGBA, x, y int, label labels.Label, dist *labels.Distribution) {
	// Slot outline so the sheet can be cut by eye.
	for dx := 0; dx < slotWidth; dx++ {
		img.SetRGBA(x+dx, y, barFaint)
		img.SetRGBA(x+dx, y+slotHeight-1, barFaint)
	}
	for dy := 0; dy < slotHeight; dy++ {
		img.SetRGBA(x, y+dy, barFaint)
		img.SetRGBA(x+slotWidth-1, y+dy, barFaint)
	}

	drawLabelText(img, x+12, y+20, label.Caption)

	code := Barcode(label.BarcodeID, slotWidth-24, 70)
	target := image.Rect(x+12, y+32, x+slotWidth-12, y+102)
	xdraw.CatmullRom.Scale(img, target, code, code.Bounds(), xdraw.Over, nil)

	drawLabelText(img, x+12, y+122, label.BarcodeID)

	if dist != nil {
		if employee, ok := dist.EmployeeFor(label.SequenceIndex); ok {
			drawLabelText(img, x+12, y+144, employee)
		}
	}
}

// WritePages renders every page of the batch into dir as page-N.png and
// returns the written paths. An empty batch still writes one blank page.
func WritePages(dir string, batch []labels.Label, dist *labels.Distribution) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	total := labels.TotalPages(len(batch))
	paths := make([]string, 0, total)
	for page := 0; page < total; page++ {
		img := Sheet(labels.PageSlice(batch, page), dist)
		path := filepath.Join(dir, fmt.Sprintf("page-%d.png", page))
		if err := writePNG(path, img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func drawLabelText(img *image.RGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(barInk),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
