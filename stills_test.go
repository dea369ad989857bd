package stills

import (
	"os"
	"testing"

	"github.com/stillkit/stills/internal/decode"
)

func TestFrameToImage(t *testing.T) {
	data := make([]byte, 2*2*3)
	// Top-left pixel red, bottom-right blue.
	data[0] = 0xff
	data[9+2] = 0xff

	frame := &Frame{Index: 0, Width: 2, Height: 2, Data: data}

	img, err := frame.ToImage()
	if err != nil {
		t.Fatalf("ToImage() error = %v", err)
	}

	r, _, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 0xff {
		t.Errorf("pixel (0,0) red = %d, want 255", r>>8)
	}
	_, _, b, _ := img.At(1, 1).RGBA()
	if b>>8 != 0xff {
		t.Errorf("pixel (1,1) blue = %d, want 255", b>>8)
	}
}

func TestFrameToImageShortBuffer(t *testing.T) {
	frame := &Frame{Width: 4, Height: 4, Data: make([]byte, 3)}
	if _, err := frame.ToImage(); err == nil {
		t.Error("expected error for short frame buffer")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/video.mp4"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestWithReaderPropagatesOpenError(t *testing.T) {
	called := false
	err := WithReader("/nonexistent/video.mp4", func(r *Reader) error {
		called = true
		return nil
	})
	if err == nil {
		t.Error("expected error for missing file")
	}
	if called {
		t.Error("fn should not run when open fails")
	}
}

func TestErrorPredicates(t *testing.T) {
	_, err := Open("/nonexistent/video.mp4")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !IsOpenError(err) {
		t.Errorf("IsOpenError(%v) = false, want true", err)
	}
	if IsDecodeError(err) || IsClosedError(err) {
		t.Errorf("open failure matched the wrong predicate: %v", err)
	}

	r := &Reader{session: &decode.Session{}}
	if _, err := r.ReadFrame(0); !IsClosedError(err) {
		t.Errorf("reading a closed reader: IsClosedError = false for %v", err)
	}
}

// testVideo returns the path of a sample video for integration tests, or
// skips when none is configured.
func testVideo(t *testing.T) string {
	t.Helper()
	path := os.Getenv("STILLS_TEST_VIDEO")
	if path == "" {
		t.Skip("STILLS_TEST_VIDEO not set")
	}
	return path
}

func TestReaderLifecycle(t *testing.T) {
	path := testVideo(t)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if !r.IsOpen() {
		t.Error("IsOpen() = false after Open")
	}

	meta := r.Metadata()
	if meta.Width <= 0 || meta.Height <= 0 {
		t.Errorf("metadata reports no dimensions: %dx%d", meta.Width, meta.Height)
	}
	if meta.FPS <= 0 {
		t.Errorf("metadata FPS = %v, want > 0", meta.FPS)
	}

	r.Close()
	if r.IsOpen() {
		t.Error("IsOpen() = true after Close")
	}
	// Close is idempotent.
	r.Close()

	if _, err := r.ReadFrame(0); err == nil {
		t.Error("expected error reading from a closed reader")
	}
}

func TestReaderSequentialRead(t *testing.T) {
	path := testVideo(t)

	err := WithReader(path, func(r *Reader) error {
		first, err := r.ReadFrame(0)
		if err != nil {
			t.Fatalf("ReadFrame(0) error = %v", err)
		}
		if first == nil {
			t.Fatal("ReadFrame(0) = nil, want frame")
		}
		if first.Index != 0 {
			t.Errorf("first frame index = %d, want 0", first.Index)
		}

		meta := r.Metadata()
		if len(first.Data) != meta.Width*meta.Height*3 {
			t.Errorf("frame buffer = %d bytes, want %d", len(first.Data), meta.Width*meta.Height*3)
		}

		second, err := r.ReadFrame(1)
		if err != nil {
			t.Fatalf("ReadFrame(1) error = %v", err)
		}
		if second == nil || second.Index != 1 {
			t.Errorf("ReadFrame(1) = %+v, want frame with index 1", second)
		}

		// Rewinding without a seek is absent, not an error.
		rewound, err := r.ReadFrame(0)
		if err != nil {
			t.Fatalf("ReadFrame(0) after advance error = %v", err)
		}
		if rewound != nil {
			t.Error("ReadFrame(0) after advance should be absent")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestReaderSeek(t *testing.T) {
	path := testVideo(t)

	err := WithReader(path, func(r *Reader) error {
		meta := r.Metadata()
		if meta.Duration <= 0 {
			t.Skip("sample video has no known duration")
		}

		ok, err := r.Seek(meta.Duration / 2)
		if err != nil {
			t.Fatalf("Seek() error = %v", err)
		}
		if !ok {
			t.Fatal("Seek() = false for an in-range position")
		}

		// Indices behind the seek landing point are absent, never a later
		// frame relabelled.
		behind, err := r.ReadFrame(0)
		if err != nil {
			t.Fatalf("ReadFrame(0) after seek error = %v", err)
		}
		if behind != nil && behind.Index != 0 {
			t.Errorf("ReadFrame(0) after seek = frame %d, want absent", behind.Index)
		}

		frame, err := r.FrameAt(meta.Duration / 2)
		if err != nil {
			t.Fatalf("FrameAt() error = %v", err)
		}
		if frame == nil {
			t.Error("FrameAt() mid-stream = nil, want frame")
		}

		// Out of range positions report false without an error.
		ok, err = r.Seek(meta.Duration * 10)
		if err != nil {
			t.Fatalf("Seek(past end) error = %v", err)
		}
		if ok {
			t.Error("Seek(past end) = true, want false")
		}

		ok, err = r.Seek(-1)
		if err != nil {
			t.Fatalf("Seek(-1) error = %v", err)
		}
		if ok {
			t.Error("Seek(-1) = true, want false")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadFramesRange(t *testing.T) {
	path := testVideo(t)

	err := WithReader(path, func(r *Reader) error {
		frames, err := r.ReadFrames(0, 5)
		if err != nil {
			t.Fatalf("ReadFrames() error = %v", err)
		}
		if len(frames) == 0 {
			t.Fatal("ReadFrames(0, 5) returned no frames")
		}
		for i, frame := range frames {
			if frame.Index != i {
				t.Errorf("frames[%d].Index = %d, want %d", i, frame.Index, i)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadFramesInvalidRange(t *testing.T) {
	r := &Reader{}
	if _, err := r.ReadFrames(5, 2); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := r.ReadFrames(-1, 2); err == nil {
		t.Error("expected error for negative start")
	}
}
