package decode

import (
	goerrors "errors"
	"fmt"

	"github.com/asticode/go-astiav"

	"github.com/stillkit/stills/internal/errors"
)

// ReadFrame decodes forward until the frame at the requested decode-order
// index is produced and returns it converted to RGB24.
//
// The cursor only moves forward: if index precedes it the caller should have
// seeked first, and ReadFrame returns absent (nil, nil) rather than silently
// handing back an unrelated later frame. The same holds when a seek landed
// past the request. Absent is also the result once the stream is exhausted.
// Decode failures are returned as errors and leave the session usable for
// later indices.
func (s *Session) ReadFrame(index int) (*RawFrame, error) {
	if !s.IsOpen() {
		return nil, errors.NewClosedError("ReadFrame")
	}
	if index < 0 {
		return nil, errors.NewDecodeError(fmt.Sprintf("negative frame index %d", index), nil)
	}
	if index < s.cursor && !s.resync {
		return nil, nil
	}

	for {
		ok, err := s.decodeNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}

		idx := s.cursor
		s.cursor++
		if idx < index {
			continue
		}
		if idx > index {
			// A seek anchored the cursor past the request.
			return nil, nil
		}

		data, err := s.convert(s.frame)
		if err != nil {
			return nil, err
		}

		rf := &RawFrame{
			Index:  idx,
			PTS:    s.frame.Pts(),
			Width:  s.width,
			Height: s.height,
			Data:   data,
		}
		if dts := s.frame.PktDts(); dts != astiav.NoPtsValue {
			d := dts
			rf.DTS = &d
		}
		return rf, nil
	}
}

// decodeNext produces the next video frame into s.frame, feeding packets to
// the decoder as needed. It returns false at end of stream. On success the
// cursor is re-anchored from the frame's pts when a seek left it approximate.
func (s *Session) decodeNext() (bool, error) {
	if s.finished {
		return false, nil
	}

	for {
		err := s.codecCtx.ReceiveFrame(s.frame)
		if err == nil {
			s.anchorCursor(s.frame.Pts())
			return true, nil
		}
		if goerrors.Is(err, astiav.ErrEof) {
			s.finished = true
			return false, nil
		}
		if !goerrors.Is(err, astiav.ErrEagain) {
			return false, errors.NewDecodeError("decoder rejected frame", err)
		}

		if err := s.feedPacket(); err != nil {
			return false, err
		}
		if s.finished {
			return false, nil
		}
	}
}

// feedPacket sends the next video packet to the decoder, entering drain mode
// at container end of file.
func (s *Session) feedPacket() error {
	if s.draining {
		// Decoder already draining but still reporting EAGAIN: treat as done.
		s.finished = true
		return nil
	}

	for {
		if err := s.formatCtx.ReadFrame(s.packet); err != nil {
			if goerrors.Is(err, astiav.ErrEof) {
				s.draining = true
				if err := s.codecCtx.SendPacket(nil); err != nil && !goerrors.Is(err, astiav.ErrEof) {
					return errors.NewDecodeError("flushing decoder at end of stream", err)
				}
				return nil
			}
			return errors.NewDecodeError("reading packet from container", err)
		}

		if s.packet.StreamIndex() != s.streamIndex {
			s.packet.Unref()
			continue
		}

		err := s.codecCtx.SendPacket(s.packet)
		s.packet.Unref()
		if err != nil && !goerrors.Is(err, astiav.ErrEagain) {
			return errors.NewDecodeError("sending packet to decoder", err)
		}
		return nil
	}
}

// anchorCursor re-derives the cursor from a decoded frame's pts. Frame 0's
// pts is latched as the stream start so later anchors are start-offset aware.
func (s *Session) anchorCursor(pts int64) {
	if s.firstPTS == astiav.NoPtsValue && s.cursor == 0 && !s.resync {
		s.firstPTS = pts
	}
	if !s.resync || pts == astiav.NoPtsValue {
		s.resync = false
		return
	}
	s.resync = false

	start := s.firstPTS
	if start == astiav.NoPtsValue {
		start = 0
	}
	seconds := float64(pts-start) * s.timeBase.Float64()
	s.cursor = indexForSeconds(seconds, s.fps)
}
