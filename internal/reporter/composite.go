package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) Hardware(summary HardwareSummary) {
	for _, r := range c.reporters {
		r.Hardware(summary)
	}
}

func (c *CompositeReporter) VideoInfo(summary VideoSummary) {
	for _, r := range c.reporters {
		r.VideoInfo(summary)
	}
}

func (c *CompositeReporter) ExtractionStarted(totalFrames int) {
	for _, r := range c.reporters {
		r.ExtractionStarted(totalFrames)
	}
}

func (c *CompositeReporter) ExtractionProgress(progress ProgressSnapshot) {
	for _, r := range c.reporters {
		r.ExtractionProgress(progress)
	}
}

func (c *CompositeReporter) ExtractionComplete(summary ExtractionOutcome) {
	for _, r := range c.reporters {
		r.ExtractionComplete(summary)
	}
}

func (c *CompositeReporter) SheetComplete(summary SheetOutcome) {
	for _, r := range c.reporters {
		r.SheetComplete(summary)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) OperationComplete(message string) {
	for _, r := range c.reporters {
		r.OperationComplete(message)
	}
}

func (c *CompositeReporter) BatchStarted(info BatchStartInfo) {
	for _, r := range c.reporters {
		r.BatchStarted(info)
	}
}

func (c *CompositeReporter) FileProgress(context FileProgressContext) {
	for _, r := range c.reporters {
		r.FileProgress(context)
	}
}

func (c *CompositeReporter) BatchComplete(summary BatchSummary) {
	for _, r := range c.reporters {
		r.BatchComplete(summary)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
