package processing

import (
	"reflect"
	"testing"
)

func TestResolveIndices(t *testing.T) {
	tests := []struct {
		name       string
		sel        Selection
		fps        float64
		frameCount int64
		want       []int
	}{
		{
			name:       "default range uses frame count",
			sel:        Selection{},
			fps:        25,
			frameCount: 4,
			want:       []int{0, 1, 2, 3},
		},
		{
			name:       "default range with unknown count is open",
			sel:        Selection{},
			fps:        25,
			frameCount: 0,
			want:       nil,
		},
		{
			name:       "explicit range",
			sel:        Selection{Start: 2, End: 6},
			fps:        25,
			frameCount: 100,
			want:       []int{2, 3, 4, 5},
		},
		{
			name:       "range with stride",
			sel:        Selection{Start: 0, End: 10, Every: 3},
			fps:        25,
			frameCount: 100,
			want:       []int{0, 3, 6, 9},
		},
		{
			name:       "explicit indices are sorted and deduplicated",
			sel:        Selection{Indices: []int{7, 2, 7, -1, 4}},
			fps:        25,
			frameCount: 100,
			want:       []int{2, 4, 7},
		},
		{
			name:       "timestamps map to nearest frame",
			sel:        Selection{Timestamps: []float64{0, 1.0, 2.02}},
			fps:        25,
			frameCount: 100,
			want:       []int{0, 25, 51}, // 2.02*25 rounds to 51
		},
		{
			name:       "negative timestamps are dropped",
			sel:        Selection{Timestamps: []float64{-1, 1}},
			fps:        25,
			frameCount: 100,
			want:       []int{25},
		},
		{
			name:       "timestamps without a frame rate resolve to nothing",
			sel:        Selection{Timestamps: []float64{1, 2}},
			fps:        0,
			frameCount: 100,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveIndices(tt.sel, tt.fps, tt.frameCount)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resolveIndices() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A container without nb_frames or a usable duration leaves the frame count
// unknown, so open-ended ranges fall back to sequential decoding. Start and
// Every must survive that fallback.
func TestSequentialPlan(t *testing.T) {
	tests := []struct {
		name      string
		sel       Selection
		wantStart int
		wantEvery int
	}{
		{"no selection", Selection{}, 0, 1},
		{"open range with start", Selection{Start: 100}, 100, 1},
		{"open range with stride", Selection{Every: 5}, 0, 5},
		{"start and stride", Selection{Start: 10, Every: 3}, 10, 3},
		{"negative start clamps", Selection{Start: -4}, 0, 1},
		{"zero stride keeps every frame", Selection{Every: 0}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resolveIndices(tt.sel, 25, 0) != nil {
				t.Fatal("open-ended selection with unknown count should resolve to nil")
			}
			start, every := sequentialPlan(tt.sel)
			if start != tt.wantStart || every != tt.wantEvery {
				t.Errorf("sequentialPlan() = (%d, %d), want (%d, %d)",
					start, every, tt.wantStart, tt.wantEvery)
			}
		})
	}
}
