package stills

import "github.com/stillkit/stills/internal/errors"

// Error predicates for callers outside the module. The underlying error
// taxonomy lives in an internal package; these see through fmt.Errorf
// wrapping.

// IsOpenError reports whether err means the container could not be opened or
// recognized.
func IsOpenError(err error) bool {
	return errors.IsOpen(err)
}

// IsNoVideoStreamError reports whether err means the container has no video
// stream.
func IsNoVideoStreamError(err error) bool {
	return errors.IsNoVideoStream(err)
}

// IsDecodeError reports whether err is a per-frame decode failure. The Reader
// stays usable after one.
func IsDecodeError(err error) bool {
	return errors.IsDecode(err)
}

// IsUnsupportedFormatError reports whether err means the source pixel format
// has no conversion path to RGB24.
func IsUnsupportedFormatError(err error) bool {
	return errors.IsUnsupportedFormat(err)
}

// IsClosedError reports whether err means the Reader was already closed.
func IsClosedError(err error) bool {
	return errors.IsClosed(err)
}

// IsCancelledError reports whether err means the operation was cancelled.
func IsCancelledError(err error) bool {
	return errors.IsCancelled(err)
}
