package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	Hardware(summary HardwareSummary)
	VideoInfo(summary VideoSummary)
	ExtractionStarted(totalFrames int)
	ExtractionProgress(progress ProgressSnapshot)
	ExtractionComplete(summary ExtractionOutcome)
	SheetComplete(summary SheetOutcome)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(message string)
	BatchStarted(info BatchStartInfo)
	FileProgress(context FileProgressContext)
	BatchComplete(summary BatchSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Hardware(HardwareSummary)           {}
func (NullReporter) VideoInfo(VideoSummary)             {}
func (NullReporter) ExtractionStarted(int)              {}
func (NullReporter) ExtractionProgress(ProgressSnapshot) {}
func (NullReporter) ExtractionComplete(ExtractionOutcome) {}
func (NullReporter) SheetComplete(SheetOutcome)         {}
func (NullReporter) Warning(string)                     {}
func (NullReporter) Error(ReporterError)                {}
func (NullReporter) OperationComplete(string)           {}
func (NullReporter) BatchStarted(BatchStartInfo)        {}
func (NullReporter) FileProgress(FileProgressContext)   {}
func (NullReporter) BatchComplete(BatchSummary)         {}
func (NullReporter) Verbose(string)                     {}
