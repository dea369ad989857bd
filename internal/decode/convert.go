package decode

import (
	"github.com/asticode/go-astiav"

	"github.com/stillkit/stills/internal/errors"
)

// convert turns a decoded native frame into a fresh packed RGB24 buffer.
//
// The swscale context is created lazily on the first call, sized to the
// stream's fixed dimensions, and kept for the session's lifetime. The
// persistent rgbFrame is only ever a staging area; every call copies out of
// it so returned buffers survive internal reuse.
func (s *Session) convert(src *astiav.Frame) ([]byte, error) {
	if s.scaleCtx == nil {
		ctx, err := astiav.CreateSoftwareScaleContext(
			s.width, s.height, s.codecCtx.PixelFormat(),
			s.width, s.height, astiav.PixelFormatRgb24,
			s.scaleFlags,
		)
		if err != nil {
			return nil, errors.NewUnsupportedFormatError(s.codecCtx.PixelFormat().Name(), err)
		}
		s.scaleCtx = ctx
		s.logger.Debug("conversion context created", "source", s.codecCtx.PixelFormat().Name())
	}

	if err := s.scaleCtx.ScaleFrame(src, s.rgbFrame); err != nil {
		return nil, errors.NewUnsupportedFormatError(s.codecCtx.PixelFormat().Name(), err)
	}

	// Align 1 yields the packed layout with row stride width*3 and no
	// padding, which is the documented buffer contract.
	raw, err := s.rgbFrame.Data().Bytes(1)
	if err != nil {
		return nil, errors.NewDecodeError("reading converted frame data", err)
	}
	size := rgbBufferSize(s.width, s.height)
	if len(raw) < size {
		return nil, errors.NewDecodeError("converted frame is short", nil)
	}

	out := make([]byte, size)
	copy(out, raw[:size])
	return out, nil
}
