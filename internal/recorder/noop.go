package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordReport(_ *ReportRun) error     { return nil }
func (n *NoopRecorder) RecordCleaning(_ *CleaningRun) error { return nil }
func (n *NoopRecorder) Close() error                        { return nil }
