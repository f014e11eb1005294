package model

// SyncMode selects the sheet reconciliation strategy for a run.
type SyncMode string

const (
	ModeRewrite SyncMode = "REWRITE"
	ModeAppend  SyncMode = "APPEND"
)
