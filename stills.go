// Package stills provides a Go library for reading video frames as RGB
// images.
//
// Stills opens a video container through FFmpeg, exposes its metadata, and
// decodes individual frames on demand with random access by index or
// timestamp. Decoded frames are packed RGB24 buffers that can be converted to
// standard library images.
//
// Basic usage:
//
//	r, err := stills.Open("input.mp4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	frame, err := r.ReadFrame(0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if frame != nil {
//	    img, _ := frame.ToImage()
//	    // ...
//	}
package stills

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/asticode/go-astiav"

	"github.com/stillkit/stills/internal/decode"
	"github.com/stillkit/stills/internal/discovery"
	"github.com/stillkit/stills/internal/export"
	"github.com/stillkit/stills/internal/probe"
)

// Metadata is the read-once snapshot of container and stream properties,
// captured when the video is opened.
type Metadata = probe.Metadata

// Frame is one decoded video frame as packed RGB24 pixel data. The buffer is
// row-major with stride Width*3 and no padding; the frame owns it and it
// stays valid after the Reader advances or closes.
type Frame struct {
	// Index is the zero-based decode-order position of this frame.
	Index int
	// PTS is the presentation timestamp in stream time-base units.
	PTS int64
	// DTS is the decode timestamp, nil when the container does not provide
	// one.
	DTS *int64
	Width  int
	Height int
	Data   []byte
}

// ToImage copies the frame into a standard library RGBA image.
func (f *Frame) ToImage() (*image.RGBA, error) {
	return export.RGBAFromRGB24(f.Data, f.Width, f.Height)
}

// ScaleMode selects the scaling algorithm used for the RGB conversion.
type ScaleMode int

const (
	// ScaleBilinear is the default quality/speed tradeoff.
	ScaleBilinear ScaleMode = iota
	// ScaleFastBilinear favours speed over quality.
	ScaleFastBilinear
	// ScaleBicubic favours quality over speed.
	ScaleBicubic
)

func (m ScaleMode) flags() astiav.SoftwareScaleContextFlags {
	switch m {
	case ScaleFastBilinear:
		return astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagFastBilinear)
	case ScaleBicubic:
		return astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBicubic)
	default:
		return astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear)
	}
}

type options struct {
	logger    *slog.Logger
	scaleMode ScaleMode
}

// Option configures a Reader.
type Option func(*options)

// WithLogger attaches a structured logger for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithScaleMode selects the pixel conversion algorithm.
func WithScaleMode(mode ScaleMode) Option {
	return func(o *options) {
		o.scaleMode = mode
	}
}

// Reader reads frames from one open video file.
//
// A Reader owns native decoder state and is safe for use from multiple
// goroutines, but calls are serialized; it is not a concurrent decoder.
type Reader struct {
	mu      sync.Mutex
	session *decode.Session
	meta    *Metadata
	path    string
}

// Open opens the video at path and probes its metadata. The returned Reader
// must be closed when no longer needed.
func Open(path string, opts ...Option) (*Reader, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	session, err := decode.Open(path, decode.Options{
		ScaleFlags: o.scaleMode.flags(),
		Logger:     o.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Reader{
		session: session,
		meta:    probe.FromSession(path, session),
		path:    path,
	}, nil
}

// WithReader opens the video at path, passes the Reader to fn, and closes it
// afterwards regardless of fn's outcome.
func WithReader(path string, fn func(*Reader) error, opts ...Option) error {
	r, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}

// Path returns the path the Reader was opened with.
func (r *Reader) Path() string {
	return r.path
}

// Metadata returns the snapshot captured at open time.
func (r *Reader) Metadata() *Metadata {
	return r.meta
}

// IsOpen reports whether the Reader still holds decoder resources.
func (r *Reader) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.IsOpen()
}

// Close releases all decoder resources. It is idempotent; reads after Close
// fail with a closed-reader error.
func (r *Reader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session.Close()
}

// ReadFrame returns the frame at the given decode-order index, decoding
// forward from the current position.
//
// The result is (nil, nil) when the frame is absent: the index precedes the
// current position, a seek landed past it, or the stream ended before
// reaching it. Use Seek or FrameAt to move backwards.
func (r *Reader) ReadFrame(index int) (*Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readFrameLocked(index)
}

func (r *Reader) readFrameLocked(index int) (*Frame, error) {
	raw, err := r.session.ReadFrame(index)
	if err != nil || raw == nil {
		return nil, err
	}
	return frameFromRaw(raw), nil
}

// ReadFrames returns the frames in the half-open index range [start, end),
// in order. The slice is shorter than requested when the stream ends inside
// the range.
func (r *Reader) ReadFrames(start, end int) ([]*Frame, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid frame range [%d, %d)", start, end)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	frames := make([]*Frame, 0, end-start)
	for index := start; index < end; index++ {
		frame, err := r.readFrameLocked(index)
		if err != nil {
			return frames, err
		}
		if frame == nil {
			break
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// Seek repositions the reader at or before the keyframe covering the given
// timestamp. It returns false with a nil error when the position is out of
// range or the container refuses the seek; decoding state is unchanged in
// that case.
func (r *Reader) Seek(seconds float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Seek(seconds)
}

// FrameAt returns the frame nearest to the given timestamp, seeking as
// needed. Unlike ReadFrame it can move backwards. The result is (nil, nil)
// when the timestamp is out of range.
func (r *Reader) FrameAt(seconds float64) (*Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seconds < 0 {
		return nil, nil
	}

	index := 0
	if fps := r.session.FPS(); fps > 0 {
		index = int(math.Round(seconds * fps))
	}

	// Only decode sequentially when the target is a short way ahead;
	// otherwise jump to the nearest keyframe first.
	const nearWindow = 64
	cursor := r.session.Cursor()
	if index < cursor || index > cursor+nearWindow {
		ok, err := r.session.Seek(seconds)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}

	return r.readFrameLocked(index)
}

// FindVideos finds video files in a directory, sorted by filename.
func FindVideos(dir string) ([]string, error) {
	return discovery.FindVideoFiles(dir)
}

func frameFromRaw(raw *decode.RawFrame) *Frame {
	return &Frame{
		Index:  raw.Index,
		PTS:    raw.PTS,
		DTS:    raw.DTS,
		Width:  raw.Width,
		Height: raw.Height,
		Data:   raw.Data,
	}
}
