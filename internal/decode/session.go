// Package decode owns the FFmpeg decoding pipeline for a single open video:
// demuxer, decoder, pixel-format converter and seek handling. A Session holds
// exclusive native resources and must not be shared between goroutines or
// copied; the public stills.Reader wraps exactly one Session.
package decode

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/asticode/go-astiav"

	"github.com/stillkit/stills/internal/errors"
)

var ffmpegLogOnce sync.Once

// Session is a stateful decode pipeline for one open container.
//
// Native resources are acquired in a strict order on Open and released in
// reverse order on Close. The zero value is not usable; always construct via
// Open.
type Session struct {
	formatCtx *astiav.FormatContext
	codecCtx  *astiav.CodecContext
	frame     *astiav.Frame // native decode target, reused every call
	rgbFrame  *astiav.Frame // persistent RGB24 conversion scratch
	packet    *astiav.Packet
	scaleCtx  *astiav.SoftwareScaleContext // lazily created on first convert

	streamIndex int
	timeBase    astiav.Rational
	fps         float64
	width       int
	height      int

	// cursor is the decode-order index of the next frame ReceiveFrame will
	// produce. After a seek it is an estimate until the first decoded frame's
	// pts re-anchors it.
	cursor   int
	resync   bool
	firstPTS int64 // pts of frame 0, latched on first decode; NoPtsValue until then
	draining bool
	finished bool

	duration   float64
	scaleFlags astiav.SoftwareScaleContextFlags
	logger     *slog.Logger
}

// Options configures session construction.
type Options struct {
	// ScaleFlags selects the swscale algorithm for the RGB24 conversion.
	// Zero means bilinear.
	ScaleFlags astiav.SoftwareScaleContextFlags
	// Logger receives debug events. Nil disables logging.
	Logger *slog.Logger
}

// Open opens the container at path and prepares the decode pipeline for its
// first video stream. On any failure every resource acquired so far is
// released before returning, so a failed Open never leaks native state.
func Open(path string, opts Options) (*Session, error) {
	if path == "" {
		return nil, errors.NewPathError("empty input path")
	}

	ffmpegLogOnce.Do(func() {
		astiav.SetLogLevel(astiav.LogLevelError)
	})

	s := &Session{
		streamIndex: -1,
		firstPTS:    astiav.NoPtsValue,
		scaleFlags:  opts.ScaleFlags,
		logger:      opts.Logger,
	}
	if s.scaleFlags == 0 {
		s.scaleFlags = astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := s.acquire(path); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// acquire performs the ordered resource acquisition. Partial state is left on
// the session for Open's rollback to release.
func (s *Session) acquire(path string) error {
	s.formatCtx = astiav.AllocFormatContext()
	if s.formatCtx == nil {
		return errors.NewOpenError(path, nil)
	}
	if err := s.formatCtx.OpenInput(path, nil, nil); err != nil {
		// OpenInput failure leaves the context unopened; free it here and
		// clear the field so Close does not call CloseInput on it.
		s.formatCtx.Free()
		s.formatCtx = nil
		return errors.NewOpenError(path, err)
	}
	if err := s.formatCtx.FindStreamInfo(nil); err != nil {
		return errors.NewOpenError(path, err)
	}

	var stream *astiav.Stream
	for _, st := range s.formatCtx.Streams() {
		if st.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			stream = st
			break
		}
	}
	if stream == nil {
		return errors.NewNoVideoStreamError(path)
	}

	s.streamIndex = stream.Index()
	s.timeBase = stream.TimeBase()
	if fr := stream.AvgFrameRate(); fr.Den() != 0 {
		s.fps = fr.Float64()
	}
	s.duration = containerDurationSeconds(s.formatCtx, stream)

	// Streams with a declared start time anchor seeks before any frame has
	// been decoded; otherwise frame 0's pts is latched on first decode.
	if st := stream.StartTime(); st != astiav.NoPtsValue {
		s.firstPTS = st
	}

	params := stream.CodecParameters()
	codec := astiav.FindDecoder(params.CodecID())
	if codec == nil {
		return errors.NewOpenError(path, errors.NewDecodeError("no decoder for codec", nil))
	}
	if s.codecCtx = astiav.AllocCodecContext(codec); s.codecCtx == nil {
		return errors.NewOpenError(path, nil)
	}
	if err := s.codecCtx.FromCodecParameters(params); err != nil {
		return errors.NewOpenError(path, err)
	}
	if err := s.codecCtx.Open(codec, nil); err != nil {
		return errors.NewOpenError(path, err)
	}

	s.width = s.codecCtx.Width()
	s.height = s.codecCtx.Height()
	if s.width <= 0 || s.height <= 0 {
		return errors.NewOpenError(path, errors.NewDecodeError("stream reports no picture dimensions", nil))
	}

	if s.frame = astiav.AllocFrame(); s.frame == nil {
		return errors.NewOpenError(path, nil)
	}

	// The RGB frame is the persistent conversion scratch: one packed RGB24
	// picture, allocated once and reused for every ScaleFrame call. Callers
	// never see this buffer; convert copies out of it.
	if s.rgbFrame = astiav.AllocFrame(); s.rgbFrame == nil {
		return errors.NewOpenError(path, nil)
	}
	s.rgbFrame.SetWidth(s.width)
	s.rgbFrame.SetHeight(s.height)
	s.rgbFrame.SetPixelFormat(astiav.PixelFormatRgb24)
	if err := s.rgbFrame.AllocBuffer(1); err != nil {
		return errors.NewOpenError(path, err)
	}

	if s.packet = astiav.AllocPacket(); s.packet == nil {
		return errors.NewOpenError(path, nil)
	}

	s.logger.Debug("session opened",
		"path", path,
		"stream", s.streamIndex,
		"size", [2]int{s.width, s.height},
		"fps", s.fps,
	)
	return nil
}

// Close releases all native resources in reverse acquisition order. It is
// idempotent and never fails; cleanup problems are swallowed because release
// is already best-effort terminal.
func (s *Session) Close() {
	if s.scaleCtx != nil {
		s.scaleCtx.Free()
		s.scaleCtx = nil
	}
	if s.packet != nil {
		s.packet.Free()
		s.packet = nil
	}
	if s.rgbFrame != nil {
		s.rgbFrame.Free()
		s.rgbFrame = nil
	}
	if s.frame != nil {
		s.frame.Free()
		s.frame = nil
	}
	if s.codecCtx != nil {
		s.codecCtx.Free()
		s.codecCtx = nil
	}
	if s.formatCtx != nil {
		s.formatCtx.CloseInput()
		s.formatCtx.Free()
		s.formatCtx = nil
	}
}

// IsOpen reports whether the session currently holds native resources.
func (s *Session) IsOpen() bool {
	return s.formatCtx != nil
}

// Width returns the decoded picture width in pixels.
func (s *Session) Width() int { return s.width }

// Height returns the decoded picture height in pixels.
func (s *Session) Height() int { return s.height }

// FPS returns the stream's average frame rate.
func (s *Session) FPS() float64 { return s.fps }

// Duration returns the stream duration in seconds, or 0 when unknown.
func (s *Session) Duration() float64 { return s.duration }

// Cursor returns the decode-order index of the next frame the session will
// produce. After a seek this is an estimate until the next decode.
func (s *Session) Cursor() int { return s.cursor }

// FormatContext exposes the underlying demuxer context for metadata probing
// during open. It must not be retained past the session's lifetime.
func (s *Session) FormatContext() *astiav.FormatContext { return s.formatCtx }

// CodecContext exposes the underlying decoder context for metadata probing
// during open. It must not be retained past the session's lifetime.
func (s *Session) CodecContext() *astiav.CodecContext { return s.codecCtx }

// StreamIndex returns the index of the selected video stream.
func (s *Session) StreamIndex() int { return s.streamIndex }

// containerDurationSeconds prefers the stream duration (in stream time base)
// and falls back to the container duration (in AV_TIME_BASE units).
func containerDurationSeconds(fc *astiav.FormatContext, stream *astiav.Stream) float64 {
	if d := stream.Duration(); d > 0 && d != astiav.NoPtsValue {
		return float64(d) * stream.TimeBase().Float64()
	}
	if d := fc.Duration(); d > 0 && d != astiav.NoPtsValue {
		return float64(d) / float64(astiav.TimeBase)
	}
	return 0
}

// indexForSeconds converts a timestamp to the nearest decode-order frame
// index at the given frame rate.
func indexForSeconds(seconds, fps float64) int {
	if fps <= 0 || seconds <= 0 {
		return 0
	}
	return int(math.Round(seconds * fps))
}
