package decode

import (
	"github.com/asticode/go-astiav"

	"github.com/stillkit/stills/internal/errors"
)

// Seek repositions the demuxer at or before the keyframe covering the given
// timestamp and flushes the decoder.
//
// The position after a successful Seek is approximate: decoding resumes from
// the nearest prior sync point, and ReadFrame discards intermediate frames
// when asked for an index at or past the target. Semantic failures (the
// container refusing the seek, a target past the end) are reported as false
// with a nil error; only a closed session is a mechanical error.
func (s *Session) Seek(seconds float64) (bool, error) {
	if !s.IsOpen() {
		return false, errors.NewClosedError("Seek")
	}
	if seconds < 0 {
		return false, nil
	}
	if s.duration > 0 && seconds > s.duration {
		return false, nil
	}

	ts := secondsToStreamTS(seconds, s.timeBase)
	if err := s.formatCtx.SeekFrame(s.streamIndex, ts, astiav.NewSeekFlags(astiav.SeekFlagBackward)); err != nil {
		s.logger.Debug("seek refused by container", "seconds", seconds, "error", err)
		return false, nil
	}

	s.codecCtx.FlushBuffers()
	s.draining = false
	s.finished = false

	// The cursor estimate is corrected from the first decoded frame's pts.
	s.cursor = indexForSeconds(seconds, s.fps)
	s.resync = true

	s.logger.Debug("seek", "seconds", seconds, "ts", ts, "cursor", s.cursor)
	return true, nil
}

// secondsToStreamTS converts a timestamp in seconds to stream time-base units.
func secondsToStreamTS(seconds float64, tb astiav.Rational) int64 {
	f := tb.Float64()
	if f <= 0 {
		return 0
	}
	return int64(seconds / f)
}
