package render

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/pulse/internal/labels"
)

func TestSheetDimensions(t *testing.T) {
	batch := labels.Expand([]labels.Row{{Task: "Foam Board", Quantity: "25", Barcodes: "4"}}, "")
	img := Sheet(batch, nil)

	wantW, wantH := SheetSize()
	assert.Equal(t, wantW, img.Bounds().Dx())
	assert.Equal(t, wantH, img.Bounds().Dy())
}

func TestSheetDrawsInk(t *testing.T) {
	batch := labels.Expand([]labels.Row{{Task: "Foam Board", Quantity: "25", Barcodes: "2"}}, "")
	img := Sheet(batch, nil)

	inked := 0
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			if img.RGBAAt(x, y) != paper {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 100, "labels leave visible ink on the sheet")
}

func TestWritePages(t *testing.T) {
	dir := t.TempDir()
	batch := labels.Expand([]labels.Row{{Task: "Bulk", Quantity: "1", Barcodes: "13"}}, "")
	roster := labels.NewRoster()
	roster.Add("Alice")
	dist := labels.Distribute(batch, roster.Names())

	paths, err := WritePages(dir, batch, &dist)
	require.NoError(t, err)
	require.Len(t, paths, 2, "13 labels span two pages")

	for i, path := range paths {
		assert.Equal(t, filepath.Join(dir, fmt.Sprintf("page-%d.png", i)), path)
		f, err := os.Open(path)
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err, "page %d decodes as PNG", i)
		wantW, wantH := SheetSize()
		assert.Equal(t, wantW, img.Bounds().Dx())
		assert.Equal(t, wantH, img.Bounds().Dy())
	}
}

func TestWritePagesEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	paths, err := WritePages(dir, nil, nil)
	require.NoError(t, err)
	require.Len(t, paths, 1, "an empty batch still writes one blank page")
	_, err = os.Stat(paths[0])
	assert.NoError(t, err)
}
