package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stillkit/stills/internal/config"
	"github.com/stillkit/stills/internal/logging"
	"github.com/stillkit/stills/internal/processing"
	"github.com/stillkit/stills/internal/reporter"
	"github.com/stillkit/stills/internal/util"
)

func newSheetCommand() *cobra.Command {
	var (
		outputPath string
		configPath string
		columns    int
		tileWidth  int
		count      int
		verbose    bool
		noLog      bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "sheet <video>",
		Short: "Render a contact sheet of evenly sampled frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("invalid input path: %w", err)
			}
			if _, err := os.Stat(inputPath); err != nil {
				return fmt.Errorf("input path does not exist: %s", inputPath)
			}

			var cfg *config.Config
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				cfg, err = config.LoadDefault()
			}
			if err != nil {
				return err
			}

			if columns != 0 {
				cfg.SheetColumns = columns
			}
			if tileWidth != 0 {
				cfg.SheetTileWidth = tileWidth
			}
			if count != 0 {
				cfg.SheetCount = count
			}

			if outputPath == "" {
				outputPath = util.GetFileStem(inputPath) + "_sheet.png"
			}
			info, err := util.ResolveOutputArg(outputPath)
			if err != nil {
				return fmt.Errorf("output must be an image file or directory: %s", outputPath)
			}
			if info.FilenameOverride == "" {
				info.FilenameOverride = util.GetFileStem(inputPath) + "_sheet" + cfg.Format.Extension()
			}
			target := filepath.Join(info.OutputDir, info.FilenameOverride)

			if err := util.EnsureDirectory(info.OutputDir); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			if cfg.LogDir == "" {
				cfg.LogDir = filepath.Join(info.OutputDir, "logs")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			flog, err := logging.SetupFile(cfg.LogDir, verbose, noLog)
			if err != nil {
				return fmt.Errorf("failed to setup logging: %w", err)
			}
			defer func() { _ = flog.Close() }()

			level := logging.LevelWarn
			if verbose {
				level = logging.LevelDebug
			}
			logging.Init(level, os.Stderr)

			var rep reporter.Reporter = reporter.NewTerminalReporter()
			if asJSON {
				rep = reporter.NewJSONReporter()
			}

			if err := processing.RenderSheet(cmd.Context(), cfg, inputPath, target, rep, flog); err != nil {
				return err
			}
			rep.OperationComplete("Contact sheet complete")
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&outputPath, "output", "o", "", "Output image file or directory")
	fl.StringVar(&configPath, "config", "", "YAML config file")
	fl.IntVar(&columns, "columns", 0, "Tiles per row")
	fl.IntVar(&tileWidth, "tile-width", 0, "Tile width in pixels")
	fl.IntVar(&count, "count", 0, "Number of frames to sample")
	fl.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	fl.BoolVar(&noLog, "no-log", false, "Disable log file creation")
	fl.BoolVar(&asJSON, "json", false, "Emit NDJSON progress events instead of terminal output")
	return cmd
}
