package sheet

import (
	"image"
	"math"
	"testing"
)

func solidTile(w, h int) Tile {
	return Tile{Image: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func TestRender(t *testing.T) {
	tiles := []Tile{
		solidTile(64, 36), solidTile(64, 36), solidTile(64, 36),
		solidTile(64, 36), solidTile(64, 36),
	}
	layout := Layout{Columns: 3, TileWidth: 32, Padding: 4}

	img, err := Render(tiles, layout)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// 3 columns of 32px tiles with 4px padding; 2 rows of 18px tiles.
	wantWidth := 3*32 + 4*4
	wantHeight := 2*18 + 3*4
	if img.Bounds().Dx() != wantWidth || img.Bounds().Dy() != wantHeight {
		t.Errorf("sheet size = %dx%d, want %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), wantWidth, wantHeight)
	}
}

func TestRenderWithLabels(t *testing.T) {
	tiles := []Tile{solidTile(64, 36), solidTile(64, 36)}
	layout := Layout{Columns: 2, TileWidth: 32, Padding: 4, ShowLabels: true}

	img, err := Render(tiles, layout)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Labels add a strip under each row.
	wantHeight := (18 + labelHeight) + 2*4
	if img.Bounds().Dy() != wantHeight {
		t.Errorf("sheet height = %d, want %d", img.Bounds().Dy(), wantHeight)
	}
}

func TestRenderFewerTilesThanColumns(t *testing.T) {
	tiles := []Tile{solidTile(64, 36), solidTile(64, 36)}
	layout := Layout{Columns: 5, TileWidth: 32, Padding: 4}

	img, err := Render(tiles, layout)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Grid shrinks to the actual tile count.
	wantWidth := 2*32 + 3*4
	if img.Bounds().Dx() != wantWidth {
		t.Errorf("sheet width = %d, want %d", img.Bounds().Dx(), wantWidth)
	}
}

func TestRenderEmpty(t *testing.T) {
	if _, err := Render(nil, Layout{Columns: 3, TileWidth: 32}); err == nil {
		t.Error("expected error for empty tile list")
	}
}

func TestSamplePositions(t *testing.T) {
	positions := SamplePositions(100, 4)
	want := []float64{12.5, 37.5, 62.5, 87.5}

	if len(positions) != len(want) {
		t.Fatalf("got %d positions, want %d", len(positions), len(want))
	}
	for i := range want {
		if math.Abs(positions[i]-want[i]) > 1e-9 {
			t.Errorf("positions[%d] = %v, want %v", i, positions[i], want[i])
		}
	}
}

func TestSamplePositionsEdgeCases(t *testing.T) {
	if got := SamplePositions(0, 5); got != nil {
		t.Errorf("expected nil for zero duration, got %v", got)
	}
	if got := SamplePositions(100, 0); got != nil {
		t.Errorf("expected nil for zero count, got %v", got)
	}
}
