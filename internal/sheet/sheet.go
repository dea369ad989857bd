// Package sheet renders contact sheets: a grid of frame thumbnails with
// timestamp labels, used for quick visual inspection of a video.
package sheet

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/stillkit/stills/internal/export"
	"github.com/stillkit/stills/internal/util"
)

// Tile is one thumbnail cell.
type Tile struct {
	Image image.Image
	// Seconds is the frame's position in the video, rendered as the label.
	Seconds float64
}

// Layout controls the sheet geometry.
type Layout struct {
	Columns   int
	TileWidth int
	Padding   int
	// ShowLabels draws a timestamp under each tile.
	ShowLabels bool
}

const labelHeight = 16

// Render composes the tiles into a single sheet image. Tiles are scaled to
// the layout's tile width and placed row-major.
func Render(tiles []Tile, layout Layout) (image.Image, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("no tiles to render")
	}
	if layout.Columns < 1 {
		return nil, fmt.Errorf("invalid column count %d", layout.Columns)
	}
	if layout.TileWidth < 1 {
		return nil, fmt.Errorf("invalid tile width %d", layout.TileWidth)
	}

	scaled := make([]image.Image, len(tiles))
	tileHeight := 0
	for i, tile := range tiles {
		if tile.Image == nil {
			return nil, fmt.Errorf("tile %d has no image", i)
		}
		scaled[i] = export.Resize(tile.Image, layout.TileWidth)
		if h := scaled[i].Bounds().Dy(); h > tileHeight {
			tileHeight = h
		}
	}

	cellHeight := tileHeight
	if layout.ShowLabels {
		cellHeight += labelHeight
	}

	cols := layout.Columns
	if len(tiles) < cols {
		cols = len(tiles)
	}
	rows := (len(tiles) + cols - 1) / cols
	pad := layout.Padding

	sheetWidth := cols*layout.TileWidth + (cols+1)*pad
	sheetHeight := rows*cellHeight + (rows+1)*pad

	dc := gg.NewContext(sheetWidth, sheetHeight)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.Clear()

	for i, img := range scaled {
		col := i % cols
		row := i / cols
		x := pad + col*(layout.TileWidth+pad)
		y := pad + row*(cellHeight+pad)

		dc.DrawImage(img, x, y)

		if layout.ShowLabels {
			label := util.FormatDuration(tiles[i].Seconds)
			dc.SetRGB(0.9, 0.9, 0.9)
			dc.DrawStringAnchored(label,
				float64(x)+float64(layout.TileWidth)/2,
				float64(y+tileHeight)+float64(labelHeight)/2,
				0.5, 0.35)
		}
	}

	return dc.Image(), nil
}

// SamplePositions returns count frame positions spread evenly across a
// duration, offset half a step from each end so the samples avoid black
// leader and credits frames.
func SamplePositions(durationSeconds float64, count int) []float64 {
	if count < 1 || durationSeconds <= 0 {
		return nil
	}

	step := durationSeconds / float64(count)
	positions := make([]float64, count)
	for i := range positions {
		positions[i] = step * (float64(i) + 0.5)
	}
	return positions
}
