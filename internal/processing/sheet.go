package processing

import (
	"context"
	"math"
	"time"

	"github.com/stillkit/stills/internal/config"
	"github.com/stillkit/stills/internal/decode"
	"github.com/stillkit/stills/internal/errors"
	"github.com/stillkit/stills/internal/export"
	"github.com/stillkit/stills/internal/logging"
	"github.com/stillkit/stills/internal/probe"
	"github.com/stillkit/stills/internal/reporter"
	"github.com/stillkit/stills/internal/sheet"
	"github.com/stillkit/stills/internal/util"
)

// RenderSheet samples frames evenly across a video and writes a contact
// sheet image to outputPath.
func RenderSheet(
	ctx context.Context,
	cfg *config.Config,
	inputPath, outputPath string,
	rep reporter.Reporter,
	flog *logging.FileLogger,
) error {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	session, err := decode.Open(inputPath, decode.Options{Logger: logging.Global().Logger})
	if err != nil {
		return err
	}
	defer session.Close()

	meta := probe.FromSession(inputPath, session)
	rep.VideoInfo(videoSummary(inputPath, meta))

	if meta.Duration <= 0 {
		return errors.NewDecodeError("video duration unknown, cannot sample frames", nil)
	}

	positions := sheet.SamplePositions(meta.Duration, cfg.SheetCount)
	rep.ExtractionStarted(len(positions))
	flog.Info("sampling %d frames across %s for contact sheet",
		len(positions), util.FormatDuration(meta.Duration))

	start := time.Now()
	tiles := make([]sheet.Tile, 0, len(positions))

	for i, seconds := range positions {
		if ctx.Err() != nil {
			return errors.NewCancelledError(ctx.Err())
		}

		index := int(math.Round(seconds * meta.FPS))
		raw, err := readWithSeek(session, index, meta.FPS)
		if err != nil {
			return err
		}
		if raw == nil {
			flog.Warn("no frame at %.2fs, skipping tile", seconds)
			continue
		}

		img, err := export.RGBAFromRGB24(raw.Data, raw.Width, raw.Height)
		if err != nil {
			return err
		}
		tiles = append(tiles, sheet.Tile{Image: img, Seconds: seconds})

		rep.ExtractionProgress(reporter.ProgressSnapshot{
			CurrentFrame: i + 1,
			TotalFrames:  len(positions),
			Percent:      float32(i+1) / float32(len(positions)) * 100,
		})
	}

	if len(tiles) == 0 {
		return errors.NewDecodeError("no frames could be sampled for the contact sheet", nil)
	}

	img, err := sheet.Render(tiles, sheet.Layout{
		Columns:    cfg.SheetColumns,
		TileWidth:  cfg.SheetTileWidth,
		Padding:    cfg.SheetPadding,
		ShowLabels: true,
	})
	if err != nil {
		return err
	}

	if err := export.WriteImage(img, outputPath, export.Options{
		Format:      cfg.Format,
		JPEGQuality: cfg.JPEGQuality,
	}); err != nil {
		return err
	}

	rep.SheetComplete(reporter.SheetOutcome{
		OutputPath: outputPath,
		Tiles:      len(tiles),
		Columns:    cfg.SheetColumns,
	})
	flog.Info("contact sheet with %d tiles written to %s in %s",
		len(tiles), outputPath, time.Since(start).Round(time.Millisecond))

	return nil
}
