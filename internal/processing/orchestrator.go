// Package processing orchestrates frame extraction across one or more video
// files, wiring the decoder to image output and progress reporting.
package processing

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/stillkit/stills/internal/config"
	"github.com/stillkit/stills/internal/decode"
	"github.com/stillkit/stills/internal/errors"
	"github.com/stillkit/stills/internal/export"
	"github.com/stillkit/stills/internal/logging"
	"github.com/stillkit/stills/internal/probe"
	"github.com/stillkit/stills/internal/reporter"
	"github.com/stillkit/stills/internal/util"
	"github.com/stillkit/stills/internal/worker"
)

// ExtractResult contains the result of a single file extraction.
type ExtractResult struct {
	Filename      string
	FramesWritten int
	BytesWritten  uint64
	Duration      time.Duration
}

// seekWindow is how far ahead a target index may be before jumping to a
// keyframe is cheaper than decoding through.
const seekWindow = 64

// ProcessVideos extracts the selected frames from each file in turn.
// Cancellation stops between frames; files already written stay on disk.
func ProcessVideos(
	ctx context.Context,
	cfg *config.Config,
	filesToProcess []string,
	sel Selection,
	rep reporter.Reporter,
	flog *logging.FileLogger,
) ([]ExtractResult, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	sysInfo := util.GetSystemInfo()
	rep.Hardware(reporter.HardwareSummary{
		Hostname: sysInfo.Hostname,
	})

	if len(filesToProcess) > 1 {
		var fileNames []string
		for _, f := range filesToProcess {
			fileNames = append(fileNames, util.GetFilename(f))
		}
		rep.BatchStarted(reporter.BatchStartInfo{
			TotalFiles: len(filesToProcess),
			FileList:   fileNames,
			OutputDir:  cfg.OutputDir,
		})
	}

	batchStart := time.Now()
	var results []ExtractResult

	for fileIdx, inputPath := range filesToProcess {
		if ctx.Err() != nil {
			rep.Warning(fmt.Sprintf("Extraction cancelled: %v", ctx.Err()))
			return results, errors.NewCancelledError(ctx.Err())
		}

		if len(filesToProcess) > 1 {
			rep.FileProgress(reporter.FileProgressContext{
				CurrentFile: fileIdx + 1,
				TotalFiles:  len(filesToProcess),
			})
		}

		result, err := extractFile(ctx, cfg, inputPath, sel, rep, flog)
		if err != nil {
			if errors.IsCancelled(err) {
				return results, err
			}
			rep.Error(reporter.ReporterError{
				Title:      "Extraction Error",
				Message:    fmt.Sprintf("Could not extract from %s: %v", util.GetFilename(inputPath), err),
				Context:    fmt.Sprintf("File: %s", inputPath),
				Suggestion: "Check if the file is a valid video format",
			})
			flog.Error("extraction failed for %s: %v", inputPath, err)
			continue
		}
		results = append(results, *result)
	}

	if len(filesToProcess) > 1 {
		summary := reporter.BatchSummary{
			SuccessfulCount: len(results),
			TotalFiles:      len(filesToProcess),
			TotalDuration:   time.Since(batchStart),
		}
		for _, r := range results {
			summary.TotalFramesWritten += r.FramesWritten
			summary.FileResults = append(summary.FileResults, reporter.FileResult{
				Filename:      r.Filename,
				FramesWritten: r.FramesWritten,
			})
		}
		rep.BatchComplete(summary)
	}

	return results, nil
}

// extractFile opens one video and writes its selected frames to disk.
func extractFile(
	ctx context.Context,
	cfg *config.Config,
	inputPath string,
	sel Selection,
	rep reporter.Reporter,
	flog *logging.FileLogger,
) (*ExtractResult, error) {
	start := time.Now()

	session, err := decode.Open(inputPath, decode.Options{Logger: logging.Global().Logger})
	if err != nil {
		return nil, err
	}
	defer session.Close()

	meta := probe.FromSession(inputPath, session)
	rep.VideoInfo(videoSummary(inputPath, meta))
	flog.Info("opened %s: %dx%d %s, %.3f fps, %d frames",
		inputPath, meta.Width, meta.Height, meta.Codec, meta.FPS, meta.FrameCount)

	indices := resolveIndices(sel, meta.FPS, meta.FrameCount)
	// With no explicit selection and no declared frame count, read everything
	// sequentially until end of stream.
	sequential := indices == nil &&
		len(sel.Timestamps) == 0 && len(sel.Indices) == 0 && sel.End <= 0
	total := len(indices)
	if sequential {
		total = int(meta.FrameCount)
	}
	rep.ExtractionStarted(total)

	exportOpts := export.Options{
		Format:      cfg.Format,
		JPEGQuality: cfg.JPEGQuality,
		Width:       cfg.Width,
	}
	ext := cfg.Format.Extension()

	result := &ExtractResult{Filename: util.GetFilename(inputPath)}

	// Decoding is serial, but image encoding is not. Frames fan out to a
	// write pool; the semaphore caps how many decoded frames wait in memory.
	workers := runtime.NumCPU()
	sem := worker.NewSemaphore(2 * workers)
	pool := worker.NewPool(workers, func(job worker.WriteJob) (uint64, error) {
		if err := export.WriteRGB24(job.Data, job.Width, job.Height, job.Path, exportOpts); err != nil {
			return 0, err
		}
		size, _ := util.GetFileSize(job.Path)
		return size, nil
	})

	var mu sync.Mutex
	var writeErr error
	prog := worker.Progress{FramesTotal: total}

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range pool.Results() {
			sem.Release()
			if res.Err != nil {
				mu.Lock()
				if writeErr == nil {
					writeErr = fmt.Errorf("writing %s: %w", res.Path, res.Err)
				}
				mu.Unlock()
				continue
			}
			prog.FramesComplete++
			prog.BytesComplete += res.Bytes
			flog.Debug("wrote %s", res.Path)
			rep.ExtractionProgress(reporter.ProgressSnapshot{
				CurrentFrame: prog.FramesComplete,
				TotalFrames:  total,
				Percent:      float32(prog.Percent()),
			})
		}
	}()

	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return writeErr != nil
	}

	submit := func(raw *decode.RawFrame) {
		sem.Acquire()
		pool.Submit(worker.WriteJob{
			Index:  raw.Index,
			Path:   util.FramePath(cfg.OutputDir, inputPath, raw.Index, ext),
			Data:   raw.Data,
			Width:  raw.Width,
			Height: raw.Height,
		})
	}

	decodeErr := func() error {
		if sequential {
			startIdx, every := sequentialPlan(sel)
			for index := startIdx; ; index += every {
				if ctx.Err() != nil {
					return errors.NewCancelledError(ctx.Err())
				}
				if failed() {
					return nil
				}
				raw, err := session.ReadFrame(index)
				if err != nil {
					return err
				}
				if raw == nil {
					return nil
				}
				submit(raw)
			}
		}
		for _, index := range indices {
			if ctx.Err() != nil {
				return errors.NewCancelledError(ctx.Err())
			}
			if failed() {
				return nil
			}
			raw, err := readWithSeek(session, index, meta.FPS)
			if err != nil {
				return err
			}
			if raw == nil {
				// Past the end of the stream; later indices are too.
				return nil
			}
			submit(raw)
		}
		return nil
	}()

	pool.Close()
	<-collectorDone

	if decodeErr != nil {
		return nil, decodeErr
	}
	if writeErr != nil {
		return nil, writeErr
	}

	result.FramesWritten = prog.FramesComplete
	result.BytesWritten = prog.BytesComplete
	result.Duration = time.Since(start)
	rep.ExtractionComplete(reporter.ExtractionOutcome{
		InputFile:     util.GetFilename(inputPath),
		OutputDir:     cfg.OutputDir,
		FramesWritten: result.FramesWritten,
		TotalBytes:    result.BytesWritten,
		TotalTime:     result.Duration,
	})
	flog.Info("extracted %d frame(s) from %s in %s",
		result.FramesWritten, inputPath, result.Duration.Round(time.Millisecond))

	return result, nil
}

// readWithSeek reads the frame at index, seeking first when the target is
// behind the cursor or far enough ahead that a keyframe jump is cheaper.
func readWithSeek(session *decode.Session, index int, fps float64) (*decode.RawFrame, error) {
	cursor := session.Cursor()
	if fps > 0 && (index < cursor || index > cursor+seekWindow) {
		seconds := float64(index) / fps
		if _, err := session.Seek(seconds); err != nil {
			return nil, err
		}
		// A refused seek falls through to a forward read, which reports the
		// frame absent if it is behind the cursor.
	}
	return session.ReadFrame(index)
}

func videoSummary(inputPath string, meta *probe.Metadata) reporter.VideoSummary {
	dynamicRange := "SDR"
	if meta.IsHDR {
		dynamicRange = "HDR"
	}

	frameCount := fmt.Sprintf("%d", meta.FrameCount)
	if meta.FrameCountEstimated {
		frameCount += " (estimated)"
	}

	summary := reporter.VideoSummary{
		InputFile:    util.GetFilename(inputPath),
		Container:    meta.ContainerFormat,
		Codec:        meta.Codec,
		Duration:     util.FormatDuration(meta.Duration),
		Resolution:   fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		FrameRate:    fmt.Sprintf("%.3f fps", meta.FPS),
		FrameCount:   frameCount,
		DynamicRange: dynamicRange,
	}

	if meta.HasAudio && meta.AudioCodec != nil {
		desc := *meta.AudioCodec
		if meta.AudioChannels != nil {
			desc = fmt.Sprintf("%s, %d ch", desc, *meta.AudioChannels)
		}
		if meta.AudioSampleRate != nil {
			desc = fmt.Sprintf("%s, %d Hz", desc, *meta.AudioSampleRate)
		}
		summary.AudioDescription = desc
	}
	if meta.Timecode != nil {
		summary.Timecode = *meta.Timecode
	}

	return summary
}
