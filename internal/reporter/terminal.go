package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/stillkit/stills/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu          sync.Mutex
	progress    *progressbar.ProgressBar
	interactive bool
	cyan        *color.Color
	green       *color.Color
	yellow      *color.Color
	red         *color.Color
	bold        *color.Color
}

// NewTerminalReporter creates a new terminal reporter. The progress bar is
// only drawn when stderr is a terminal; piped output gets plain text.
func NewTerminalReporter() *TerminalReporter {
	fd := os.Stderr.Fd()
	return &TerminalReporter{
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		cyan:        color.New(color.FgCyan, color.Bold),
		green:       color.New(color.FgGreen),
		yellow:      color.New(color.FgYellow, color.Bold),
		red:         color.New(color.FgRed, color.Bold),
		bold:        color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) Hardware(summary HardwareSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("HARDWARE")
	r.printLabel(10, "Hostname:", summary.Hostname)
}

func (r *TerminalReporter) VideoInfo(summary VideoSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("VIDEO")
	const w = 11
	r.printLabel(w, "File:", summary.InputFile)
	r.printLabel(w, "Container:", summary.Container)
	r.printLabel(w, "Codec:", summary.Codec)
	r.printLabel(w, "Duration:", summary.Duration)
	r.printLabel(w, "Resolution:", summary.Resolution)
	r.printLabel(w, "Frame rate:", summary.FrameRate)
	r.printLabel(w, "Frames:", summary.FrameCount)
	r.printLabel(w, "Dynamic:", summary.DynamicRange)
	if summary.AudioDescription != "" {
		r.printLabel(w, "Audio:", summary.AudioDescription)
	}
	if summary.Timecode != "" {
		r.printLabel(w, "Timecode:", summary.Timecode)
	}
}

func (r *TerminalReporter) ExtractionStarted(totalFrames int) {
	r.finishProgress()

	if !r.interactive {
		fmt.Printf("Extracting %d frame(s)\n", totalFrames)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions(
		totalFrames,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Extracting [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) ExtractionProgress(progress ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	_ = r.progress.Set(progress.CurrentFrame)
	r.progress.Describe(fmt.Sprintf("%d/%d", progress.CurrentFrame, progress.TotalFrames))
}

func (r *TerminalReporter) ExtractionComplete(summary ExtractionOutcome) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")
	r.printLabel(8, "Frames:", fmt.Sprintf("%d", summary.FramesWritten))
	r.printLabel(8, "Size:", util.FormatBytes(summary.TotalBytes))
	r.printLabel(8, "Time:", util.FormatDuration(summary.TotalTime.Seconds()))
	fmt.Printf("  %s %s\n", r.bold.Sprint("Saved to"), r.green.Sprint(summary.OutputDir))
}

func (r *TerminalReporter) SheetComplete(summary SheetOutcome) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("CONTACT SHEET")
	r.printLabel(8, "Tiles:", fmt.Sprintf("%d (%d per row)", summary.Tiles, summary.Columns))
	fmt.Printf("  %s %s\n", r.bold.Sprint("Saved to"), r.green.Sprint(summary.OutputPath))
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	fmt.Println()
	fmt.Printf("%s %s\n", r.green.Add(color.Bold).Sprint("✓"), r.bold.Sprint(message))
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH")
	fmt.Printf("  Processing %d files -> %s\n", info.TotalFiles, r.bold.Sprint(info.OutputDir))
	for i, name := range info.FileList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
}

func (r *TerminalReporter) FileProgress(context FileProgressContext) {
	fmt.Printf("\nFile %s of %d\n",
		r.bold.Sprint(context.CurrentFile),
		context.TotalFiles)
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d succeeded", summary.SuccessfulCount, summary.TotalFiles))
	fmt.Printf("  Frames: %d written\n", summary.TotalFramesWritten)
	fmt.Printf("  Time: %s\n", util.FormatDuration(summary.TotalDuration.Seconds()))

	for _, result := range summary.FileResults {
		fmt.Printf("  - %s (%d frames)\n", result.Filename, result.FramesWritten)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	fmt.Printf("  %s\n", color.New(color.Faint).Sprint(message))
}
