package decode

// RawFrame is one decoded, RGB24-converted picture. Data is freshly allocated
// per frame and owned by the caller; it never aliases the session's scratch
// buffers.
type RawFrame struct {
	// Index is the zero-based decode-order frame number.
	Index int
	// PTS is the presentation timestamp in stream time-base units.
	PTS int64
	// DTS is the decode timestamp, nil for streams without reordering info.
	DTS *int64
	// Width and Height equal the session's picture dimensions.
	Width  int
	Height int
	// Data is exactly Width*Height*3 bytes of row-major packed RGB, row
	// stride Width*3, no padding.
	Data []byte
}

// rgbBufferSize returns the byte length of one packed RGB24 picture.
func rgbBufferSize(width, height int) int {
	return width * height * 3
}
