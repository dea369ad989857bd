package timecode

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatSMPTE(t *testing.T) {
	tests := []struct {
		name      string
		counter   int64
		fps       int
		dropFrame bool
		want      string
	}{
		{"zero", 0, 25, false, "00:00:00:00"},
		{"one frame", 1, 25, false, "00:00:00:01"},
		{"one second", 25, 25, false, "00:00:01:00"},
		{"one minute", 1500, 25, false, "00:01:00:00"},
		{"one hour", 90000, 25, false, "01:00:00:00"},
		{"mixed", 25*3661 + 7, 25, false, "01:01:01:07"},
		{"24fps", 24, 24, false, "00:00:01:00"},
		{"negative clamps", -10, 25, false, "00:00:00:00"},
		{"zero rate falls back", 30, 0, false, "00:00:01:00"},

		// Drop-frame at 30fps nominal: frame 00:01:00:00 does not exist,
		// the first frame of each non-tenth minute is 00:01:00;02.
		{"drop zero", 0, 30, true, "00:00:00;00"},
		{"drop before first minute", 1799, 30, true, "00:00:59;29"},
		{"drop first minute skips two", 1800, 30, true, "00:01:00;02"},
		{"drop tenth minute keeps all", 17982, 30, true, "00:10:00;00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSMPTE(tt.counter, tt.fps, tt.dropFrame); got != tt.want {
				t.Errorf("FormatSMPTE(%d, %d, %v) = %q, want %q",
					tt.counter, tt.fps, tt.dropFrame, got, tt.want)
			}
		})
	}
}

func TestApplyDropFrameHourConsistency(t *testing.T) {
	// 29.97 drop-frame: exactly 107892 frames elapse per hour.
	got := FormatSMPTE(107892, 30, true)
	if got != "01:00:00;00" {
		t.Errorf("one hour of drop-frame = %q, want 01:00:00;00", got)
	}
}

func TestFromFileNonQuickTime(t *testing.T) {
	// Non-QuickTime containers are skipped without touching the file.
	tc, err := FromFile("/nonexistent/video.mkv")
	if err != nil {
		t.Fatalf("FromFile(mkv) error = %v", err)
	}
	if tc != "" {
		t.Errorf("FromFile(mkv) = %q, want empty", tc)
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile("/nonexistent/video.mp4"); err == nil {
		t.Error("expected error for missing mp4")
	}
}

func TestFromFileGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.mp4")
	if err := os.WriteFile(path, []byte("not an mp4 file"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := FromFile(path); err == nil {
		t.Error("expected error for a file that is not an mp4")
	}
}
