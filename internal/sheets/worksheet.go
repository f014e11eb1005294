package sheets

// Header row written to A1:B1 when the worksheet is created and on every
// rewrite. The data region is columns A:B from row 2 down.
var Header = []interface{}{"Date", "RHODL Ratio"}

// Worksheet is the minimal surface of the target tab the sync logic needs.
// Implementations return *AccessError from reads and *WriteError from
// mutations.
type Worksheet interface {
	// DateColumn returns the values of column A below the header,
	// blanks dropped, in sheet order.
	DateColumn() ([]string, error)

	// Rewrite clears columns A:B only (other columns are left intact) and
	// writes the header followed by rows starting at A1.
	Rewrite(rows [][]interface{}) error

	// Append adds rows after the last populated row of columns A:B.
	Append(rows [][]interface{}) error
}

// Cursor is the durable last-synced-date marker consulted by append mode.
// An empty date means unknown.
type Cursor interface {
	LastSynced() (string, error)
	SetLastSynced(date string) error
}
