package recorder

import "rhodlsync/internal/model"

// RunRecord holds the outcome of one sync run.
type RunRecord struct {
	Mode        model.SyncMode
	RowsFetched int
	RowsKept    int // after the cutoff filter
	RowsWritten int
	Status      string // "OK" or "FAILED"
	Error       string
}

// Recorder owns the durable last-synced-date cursor and a run history for
// later inspection. It satisfies sheets.Cursor.
type Recorder interface {
	LastSynced() (string, error)
	SetLastSynced(date string) error
	RecordRun(rec *RunRecord) error
	Close() error
}
