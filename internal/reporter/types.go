// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// HardwareSummary contains hardware information.
type HardwareSummary struct {
	Hostname string
}

// VideoSummary describes the current file before extraction.
type VideoSummary struct {
	InputFile        string
	Container        string
	Codec            string
	Duration         string
	Resolution       string
	FrameRate        string
	FrameCount       string
	DynamicRange     string
	AudioDescription string
	Timecode         string
}

// ProgressSnapshot contains extraction progress information.
type ProgressSnapshot struct {
	CurrentFrame int
	TotalFrames  int
	Percent      float32
}

// ExtractionOutcome contains final extraction results.
type ExtractionOutcome struct {
	InputFile     string
	OutputDir     string
	FramesWritten int
	TotalBytes    uint64
	TotalTime     time.Duration
}

// SheetOutcome contains contact sheet results.
type SheetOutcome struct {
	OutputPath string
	Tiles      int
	Columns    int
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	TotalFiles int
	FileList   []string
	OutputDir  string
}

// FileProgressContext contains current file index within a batch.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	SuccessfulCount    int
	TotalFiles         int
	TotalFramesWritten int
	TotalDuration      time.Duration
	FileResults        []FileResult
}

// FileResult contains per-file extraction result.
type FileResult struct {
	Filename      string
	FramesWritten int
}
