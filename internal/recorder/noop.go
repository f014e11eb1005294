package recorder

// NoopRecorder is used when SQLite is not configured. Its cursor is always
// unknown, so append mode falls back to reading the sheet.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) LastSynced() (string, error) { return "", nil }
func (n *NoopRecorder) SetLastSynced(_ string) error { return nil }
func (n *NoopRecorder) RecordRun(_ *RunRecord) error { return nil }
func (n *NoopRecorder) Close() error { return nil }
