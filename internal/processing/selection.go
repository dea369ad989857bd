package processing

import (
	"math"
	"sort"
)

// Selection describes which frames to extract from a video. The first
// populated field wins: explicit timestamps, then explicit indices, then the
// range/stride fields.
type Selection struct {
	// Timestamps are positions in seconds; each maps to the nearest frame.
	Timestamps []float64
	// Indices are explicit decode-order frame indices.
	Indices []int
	// Start and End bound a range of indices, End exclusive. End 0 means the
	// end of the stream.
	Start int
	End   int
	// Every keeps one frame per stride within the range. Zero or one keeps
	// all of them.
	Every int
}

// resolveIndices turns a selection into a sorted, de-duplicated index list.
// frameCount caps open-ended ranges; 0 means unknown and leaves them open
// (the decoder stops at end of stream anyway).
func resolveIndices(sel Selection, fps float64, frameCount int64) []int {
	var indices []int

	switch {
	case len(sel.Timestamps) > 0:
		for _, ts := range sel.Timestamps {
			if ts < 0 || fps <= 0 {
				continue
			}
			indices = append(indices, int(math.Round(ts*fps)))
		}

	case len(sel.Indices) > 0:
		for _, idx := range sel.Indices {
			if idx >= 0 {
				indices = append(indices, idx)
			}
		}

	default:
		start := sel.Start
		if start < 0 {
			start = 0
		}
		end := sel.End
		if end <= 0 {
			if frameCount <= 0 {
				return nil
			}
			end = int(frameCount)
		}
		every := sel.Every
		if every < 1 {
			every = 1
		}
		for idx := start; idx < end; idx += every {
			indices = append(indices, idx)
		}
		return indices
	}

	sort.Ints(indices)
	return dedupe(indices)
}

// sequentialPlan returns the first index and stride for an open-ended
// sequential read, where the total frame count is unknown and the decoder
// simply runs until end of stream. Start and Every still apply.
func sequentialPlan(sel Selection) (start, every int) {
	start = sel.Start
	if start < 0 {
		start = 0
	}
	every = sel.Every
	if every < 1 {
		every = 1
	}
	return start, every
}

func dedupe(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
