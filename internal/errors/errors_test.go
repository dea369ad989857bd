package errors

import (
	goerrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestCoreErrorMessage(t *testing.T) {
	underlying := goerrors.New("moov atom not found")
	err := NewOpenError("/videos/broken.mp4", underlying)

	msg := err.Error()
	if !strings.Contains(msg, "/videos/broken.mp4") {
		t.Errorf("message %q should contain the path", msg)
	}
	if !strings.Contains(msg, "moov atom not found") {
		t.Errorf("message %q should contain the underlying error", msg)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := goerrors.New("root cause")
	err := NewDecodeError("decoder rejected frame", underlying)

	if !goerrors.Is(err, underlying) {
		t.Error("errors.Is should find the underlying error")
	}
}

func TestCoreErrorIsMatchesKind(t *testing.T) {
	err := NewClosedError("ReadFrame")

	if !goerrors.Is(err, &CoreError{Kind: KindClosed}) {
		t.Error("errors.Is should match on kind")
	}
	if goerrors.Is(err, &CoreError{Kind: KindDecode}) {
		t.Error("errors.Is should not match a different kind")
	}
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"open error", NewOpenError("x.mp4", nil), IsOpen, true},
		{"no video stream", NewNoVideoStreamError("audio.flac"), IsNoVideoStream, true},
		{"decode error", NewDecodeError("bad packet", nil), IsDecode, true},
		{"unsupported format", NewUnsupportedFormatError("pal8", nil), IsUnsupportedFormat, true},
		{"closed", NewClosedError("Seek"), IsClosed, true},
		{"cancelled", NewCancelledError(nil), IsCancelled, true},
		{"wrong kind", NewOpenError("x.mp4", nil), IsDecode, false},
		{"plain error", goerrors.New("plain"), IsOpen, false},
		{"nil", nil, IsClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v for %v", got, tt.want, tt.err)
			}
		})
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("extracting frame 12: %w", NewDecodeError("decoder rejected frame", nil))

	if !IsKind(err, KindDecode) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}
	if !IsDecode(err) {
		t.Error("IsDecode should see through fmt.Errorf wrapping")
	}
}

func TestKindStrings(t *testing.T) {
	kinds := []ErrorKind{
		KindOpen, KindNoVideoStream, KindDecode, KindUnsupportedFormat,
		KindClosed, KindIO, KindPath, KindConfig, KindNoFilesFound, KindCancelled,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" || s == "Unknown error" {
			t.Errorf("kind %d has no string", k)
		}
		if seen[s] {
			t.Errorf("kind string %q is duplicated", s)
		}
		seen[s] = true
	}
}
