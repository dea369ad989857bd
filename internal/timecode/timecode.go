// Package timecode reads start timecodes from MP4/MOV containers.
//
// QuickTime-family files store the start timecode as a frame counter in a
// dedicated tmcd track rather than in the metadata dictionary, so demuxers
// that only surface dictionary tags miss it. This package walks the box
// structure with mp4ff, reads the counter sample, and renders it as SMPTE
// HH:MM:SS:FF.
package timecode

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"
)

// quickTimeExtensions are the container types that may carry a tmcd track.
var quickTimeExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".m4v": true,
}

// FromFile returns the start timecode of a QuickTime-family file, or "" when
// the file has no tmcd track. Non-QuickTime extensions return "" without
// touching the file.
func FromFile(path string) (string, error) {
	if !quickTimeExtensions[strings.ToLower(filepath.Ext(path))] {
		return "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	parsed, err := mp4.DecodeFile(f, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return "", fmt.Errorf("parsing mp4 boxes: %w", err)
	}
	if parsed.Moov == nil {
		return "", nil
	}

	for _, trak := range parsed.Moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "tmcd" {
			continue
		}
		return readTimecodeTrack(f, trak)
	}
	return "", nil
}

// readTimecodeTrack reads the frame counter sample of a tmcd track and
// formats it using the track's declared rate.
func readTimecodeTrack(r io.ReadSeeker, trak *mp4.TrakBox) (string, error) {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Mdhd == nil {
		return "", nil
	}
	stbl := trak.Mdia.Minf.Stbl

	offset, ok := firstChunkOffset(stbl)
	if !ok {
		return "", nil
	}

	if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
		return "", err
	}
	var raw [4]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return "", fmt.Errorf("reading tmcd sample: %w", err)
	}
	counter := binary.BigEndian.Uint32(raw[:])

	timescale := trak.Mdia.Mdhd.Timescale
	delta := firstSampleDelta(stbl)
	if timescale == 0 || delta == 0 {
		return "", nil
	}

	fps := int(math.Round(float64(timescale) / float64(delta)))
	dropFrame := timescale%delta != 0
	return FormatSMPTE(int64(counter), fps, dropFrame), nil
}

func firstChunkOffset(stbl *mp4.StblBox) (uint64, bool) {
	if stbl.Stco != nil && len(stbl.Stco.ChunkOffset) > 0 {
		return uint64(stbl.Stco.ChunkOffset[0]), true
	}
	if stbl.Co64 != nil && len(stbl.Co64.ChunkOffset) > 0 {
		return stbl.Co64.ChunkOffset[0], true
	}
	return 0, false
}

func firstSampleDelta(stbl *mp4.StblBox) uint32 {
	if stbl.Stts == nil || len(stbl.Stts.SampleTimeDelta) == 0 {
		return 0
	}
	return stbl.Stts.SampleTimeDelta[0]
}

// FormatSMPTE renders a frame counter as an SMPTE timecode at the given
// nominal frame rate. Drop-frame counts skip the standard two frame numbers
// (scaled for 59.94) at the start of each minute that is not a multiple of
// ten, and use the conventional semicolon separator before the frame field.
func FormatSMPTE(frameCounter int64, fps int, dropFrame bool) string {
	if fps <= 0 {
		fps = 30
	}
	if frameCounter < 0 {
		frameCounter = 0
	}

	frames := frameCounter
	if dropFrame {
		frames = applyDropFrame(frameCounter, fps)
	}

	ff := frames % int64(fps)
	totalSeconds := frames / int64(fps)
	ss := totalSeconds % 60
	mm := (totalSeconds / 60) % 60
	hh := totalSeconds / 3600

	sep := ":"
	if dropFrame {
		sep = ";"
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", hh, mm, ss, sep, ff)
}

// applyDropFrame converts a real frame count into the drop-frame numbering
// space, where two frame numbers (per 30fps) are skipped each non-tenth
// minute.
func applyDropFrame(frameCounter int64, fps int) int64 {
	dropPerMinute := int64(2 * (fps / 30))
	if dropPerMinute == 0 {
		dropPerMinute = 2
	}

	framesPerMinute := int64(fps)*60 - dropPerMinute
	framesPerTenMinutes := framesPerMinute*10 + dropPerMinute

	tenMinuteBlocks := frameCounter / framesPerTenMinutes
	remainder := frameCounter % framesPerTenMinutes

	var minutesInBlock int64
	if remainder >= framesPerMinute+dropPerMinute {
		minutesInBlock = 1 + (remainder-(framesPerMinute+dropPerMinute))/framesPerMinute
	}

	return frameCounter + dropPerMinute*(tenMinuteBlocks*9+minutesInBlock)
}
