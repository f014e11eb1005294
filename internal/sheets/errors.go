package sheets

import "fmt"

// AccessError reports a failure opening or reading the spreadsheet, most
// commonly a service account without edit access to the sheet.
type AccessError struct {
	Op  string
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("sheet access: %s: %v", e.Op, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// WriteError reports a rejected sheet mutation (quota, malformed range,
// API failure mid-write).
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("sheet write: %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
