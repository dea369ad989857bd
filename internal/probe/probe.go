// Package probe extracts container and stream metadata from an open decode
// session.
package probe

import (
	"math"
	"strings"

	"github.com/asticode/go-astiav"

	"github.com/stillkit/stills/internal/decode"
	"github.com/stillkit/stills/internal/timecode"
)

// Metadata is the read-once snapshot produced when a video is opened.
// Optional fields are nil when the container or codec does not expose them;
// they are never defaulted to a misleading sentinel.
type Metadata struct {
	Width  int
	Height int

	// FPS is the stream's average frame rate; FPSNum/FPSDen carry the exact
	// rational.
	FPS    float64
	FPSNum int
	FPSDen int

	// FrameCount is the total number of decodable frames. When the container
	// does not declare a count it is estimated from duration and frame rate;
	// FrameCountEstimated marks that case. The estimate is not a hard upper
	// bound for frame access - the actual decodable count may differ.
	FrameCount          int64
	FrameCountEstimated bool

	// Duration is the stream duration in seconds, 0 when unknown.
	Duration float64

	Codec      string
	BitRate    *int64
	ColorSpace *string
	BitDepth   *int
	Timecode   *string
	IsHDR      bool

	HasAudio        bool
	AudioCodec      *string
	AudioChannels   *int
	AudioSampleRate *int

	ContainerFormat string
}

// FromSession builds the metadata snapshot for an open session. The session's
// native contexts are only borrowed for the duration of the call.
func FromSession(path string, s *decode.Session) *Metadata {
	fc := s.FormatContext()

	m := &Metadata{
		Width:    s.Width(),
		Height:   s.Height(),
		FPS:      s.FPS(),
		Duration: s.Duration(),
	}

	var videoStream *astiav.Stream
	for _, st := range fc.Streams() {
		params := st.CodecParameters()
		switch params.MediaType() {
		case astiav.MediaTypeVideo:
			if videoStream == nil && st.Index() == s.StreamIndex() {
				videoStream = st
			}
		case astiav.MediaTypeAudio:
			m.HasAudio = true
			if m.AudioCodec == nil {
				if name := params.CodecID().Name(); name != "" {
					m.AudioCodec = &name
				}
				if ch := params.ChannelLayout().Channels(); ch > 0 {
					m.AudioChannels = &ch
				}
				if sr := params.SampleRate(); sr > 0 {
					m.AudioSampleRate = &sr
				}
			}
		}
	}

	if f := fc.InputFormat(); f != nil {
		m.ContainerFormat = f.Name()
	}

	if videoStream != nil {
		fillVideoStream(m, videoStream)
	}

	if m.Timecode == nil {
		if tc := containerTimecode(fc); tc != "" {
			m.Timecode = &tc
		}
	}
	if m.Timecode == nil {
		// MP4/MOV files carry start timecodes in a tmcd track that never
		// surfaces in the metadata dictionary.
		if tc, err := timecode.FromFile(path); err == nil && tc != "" {
			m.Timecode = &tc
		}
	}

	return m
}

func fillVideoStream(m *Metadata, st *astiav.Stream) {
	params := st.CodecParameters()

	m.Codec = params.CodecID().Name()

	if fr := st.AvgFrameRate(); fr.Den() != 0 {
		m.FPSNum = fr.Num()
		m.FPSDen = fr.Den()
	}

	if br := params.BitRate(); br > 0 {
		m.BitRate = &br
	}

	pixFmt := params.PixelFormat().Name()
	if depth := BitDepthFromPixelFormat(pixFmt); depth > 0 {
		m.BitDepth = &depth
	}

	var matrix string
	if cs := params.ColorSpace(); cs.String() != "" {
		matrix = cs.String()
		m.ColorSpace = &matrix
	}
	m.IsHDR = DetectHDR(matrix, pixFmt)

	m.FrameCount = st.NbFrames()
	if m.FrameCount <= 0 {
		m.FrameCount = EstimateFrameCount(m.Duration, m.FPS)
		m.FrameCountEstimated = m.FrameCount > 0
	}
}

// containerTimecode looks up the container-level timecode metadata entry.
func containerTimecode(fc *astiav.FormatContext) string {
	d := fc.Metadata()
	if d == nil {
		return ""
	}
	if e := d.Get("timecode", nil, astiav.NewDictionaryFlags()); e != nil {
		return e.Value()
	}
	return ""
}

// EstimateFrameCount derives a frame count from duration and frame rate when
// the container does not declare one. Returns 0 when either input is unknown.
func EstimateFrameCount(durationSeconds, fps float64) int64 {
	if durationSeconds <= 0 || fps <= 0 {
		return 0
	}
	return int64(math.Round(durationSeconds * fps))
}

// BitDepthFromPixelFormat derives the per-component bit depth from a pixel
// format name, e.g. yuv420p10le reports 10. Unknown or empty names report 0;
// names without an explicit depth suffix report 8.
func BitDepthFromPixelFormat(name string) int {
	if name == "" {
		return 0
	}
	for _, d := range []struct {
		tag   string
		depth int
	}{
		{"16", 16}, {"14", 14}, {"12", 12}, {"10", 10}, {"9", 9},
	} {
		if strings.Contains(name, "p"+d.tag) {
			return d.depth
		}
	}
	return 8
}

// DetectHDR reports whether the colour metadata indicates HDR content:
// a BT.2020 matrix together with a bit depth of at least 10.
func DetectHDR(matrix, pixFmt string) bool {
	if !containsCI(matrix, "bt2020") && !containsCI(matrix, "bt.2020") {
		return false
	}
	return BitDepthFromPixelFormat(pixFmt) >= 10
}

// containsCI performs a case-insensitive substring check.
func containsCI(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
