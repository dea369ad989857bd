package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stillkit/stills/internal/config"
	"github.com/stillkit/stills/internal/discovery"
	"github.com/stillkit/stills/internal/logging"
	"github.com/stillkit/stills/internal/processing"
	"github.com/stillkit/stills/internal/reporter"
	"github.com/stillkit/stills/internal/util"
)

// extractArgs holds the parsed arguments for the extract command.
type extractArgs struct {
	outputDir  string
	configPath string
	logDir     string
	verbose    bool
	noLog      bool
	asJSON     bool

	format  string
	quality int
	width   int

	frames string
	start  int
	end    int
	every  int
	at     []string
}

func newExtractCommand() *cobra.Command {
	var ea extractArgs

	cmd := &cobra.Command{
		Use:   "extract <video-or-directory>",
		Short: "Extract frames as image files",
		Long: `Extract frames from a video file, or from every video in a directory.

By default every frame is written. Use --frames, --start/--end/--every or
--at to select a subset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], ea)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&ea.outputDir, "output", "o", "", "Output directory (required)")
	fl.StringVar(&ea.configPath, "config", "", "YAML config file")
	fl.StringVarP(&ea.logDir, "log-dir", "l", "", "Log directory (defaults to OUTPUT/logs)")
	fl.BoolVarP(&ea.verbose, "verbose", "v", false, "Enable verbose logging")
	fl.BoolVar(&ea.noLog, "no-log", false, "Disable log file creation")
	fl.BoolVar(&ea.asJSON, "json", false, "Emit NDJSON progress events instead of terminal output")

	fl.StringVar(&ea.format, "format", "", "Output image format (png, jpeg, bmp)")
	fl.IntVar(&ea.quality, "quality", 0, "JPEG quality (1-100)")
	fl.IntVar(&ea.width, "width", 0, "Scale output to this width, keeping aspect ratio")

	fl.StringVar(&ea.frames, "frames", "", "Comma-separated frame indices (e.g. 0,24,48)")
	fl.IntVar(&ea.start, "start", 0, "First frame index of a range")
	fl.IntVar(&ea.end, "end", 0, "Frame index the range stops before (0 = end of stream)")
	fl.IntVar(&ea.every, "every", 0, "Keep one frame per N within the range")
	fl.StringArrayVar(&ea.at, "at", nil, "Timestamp to extract (seconds, MM:SS or HH:MM:SS; repeatable)")

	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runExtract(cmd *cobra.Command, inputPath string, ea extractArgs) error {
	inputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input path does not exist: %s", inputPath)
	}

	cfg, err := buildConfig(ea)
	if err != nil {
		return err
	}

	if err := util.EnsureDirectory(cfg.OutputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	flog, err := logging.SetupFile(cfg.LogDir, ea.verbose, ea.noLog)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer func() { _ = flog.Close() }()

	level := logging.LevelWarn
	if ea.verbose {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)

	var filesToProcess []string
	if inputInfo.IsDir() {
		found, err := discovery.FindVideoFilesWithLogging(inputPath, flog)
		if err != nil {
			return fmt.Errorf("failed to discover video files: %w", err)
		}
		filesToProcess = found.Files
	} else {
		filesToProcess = []string{inputPath}
		flog.Info("processing single file: %s", inputPath)
	}

	sel, err := buildSelection(ea)
	if err != nil {
		return err
	}

	var rep reporter.Reporter = reporter.NewTerminalReporter()
	if ea.asJSON {
		rep = reporter.NewJSONReporter()
	}

	results, err := processing.ProcessVideos(cmd.Context(), cfg, filesToProcess, sel, rep, flog)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no frames extracted")
	}
	rep.OperationComplete("Extraction complete")
	return nil
}

// buildConfig layers the optional config file under the CLI flags.
func buildConfig(ea extractArgs) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if ea.configPath != "" {
		cfg, err = config.LoadFile(ea.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if ea.outputDir != "" {
		outputDir, err := filepath.Abs(ea.outputDir)
		if err != nil {
			return nil, fmt.Errorf("invalid output path: %w", err)
		}
		cfg.OutputDir = outputDir
	}

	if ea.logDir != "" {
		cfg.LogDir = ea.logDir
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.OutputDir, "logs")
	}

	if ea.format != "" {
		format, err := config.ParseFormat(ea.format)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}
	if ea.quality != 0 {
		cfg.JPEGQuality = ea.quality
	}
	if ea.width != 0 {
		cfg.Width = ea.width
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildSelection translates the frame selection flags.
func buildSelection(ea extractArgs) (processing.Selection, error) {
	sel := processing.Selection{
		Start: ea.start,
		End:   ea.end,
		Every: ea.every,
	}

	if ea.frames != "" {
		for _, part := range strings.Split(ea.frames, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 {
				return sel, fmt.Errorf("invalid frame index %q", part)
			}
			sel.Indices = append(sel.Indices, idx)
		}
	}

	for _, ts := range ea.at {
		seconds, ok := util.ParseTimestamp(ts)
		if !ok {
			return sel, fmt.Errorf("invalid timestamp %q", ts)
		}
		sel.Timestamps = append(sel.Timestamps, seconds)
	}

	return sel, nil
}
