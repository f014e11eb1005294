package sheets

import (
	"fmt"
	"log"

	"rhodlsync/internal/model"
	"rhodlsync/internal/series"
)

// Syncer reconciles a series with the worksheet under one of two strategies.
type Syncer struct {
	WS     Worksheet
	Cursor Cursor
}

// NewSyncer creates a Syncer.
func NewSyncer(ws Worksheet, cursor Cursor) *Syncer {
	return &Syncer{WS: ws, Cursor: cursor}
}

// Sync applies the series to the worksheet under mode and returns the number
// of data rows written. The cursor advances to the series' latest date after
// any successful write; a cursor save failure is logged, not fatal, because
// the sheet itself is already consistent.
func (s *Syncer) Sync(mode model.SyncMode, ser model.Series) (int, error) {
	switch mode {
	case model.ModeRewrite:
		return s.rewrite(ser)
	case model.ModeAppend:
		return s.append(ser)
	default:
		return 0, fmt.Errorf("unknown sync mode %q", mode)
	}
}

func (s *Syncer) rewrite(ser model.Series) (int, error) {
	if err := s.WS.Rewrite(toRows(ser)); err != nil {
		return 0, err
	}
	s.advanceCursor(ser.Latest())
	return len(ser), nil
}

func (s *Syncer) append(ser model.Series) (int, error) {
	mark, err := s.highWaterMark()
	if err != nil {
		return 0, err
	}

	pending := series.NewerThan(ser, mark)
	if len(pending) == 0 {
		return 0, nil
	}
	if err := s.WS.Append(toRows(pending)); err != nil {
		return 0, err
	}
	s.advanceCursor(ser.Latest())
	return len(pending), nil
}

// highWaterMark prefers the durable cursor; reading the sheet's last date is
// the fallback for a first run or a disabled cursor store. Sheet contents are
// human-editable, so the inferred mark is approximate by nature.
func (s *Syncer) highWaterMark() (string, error) {
	mark, err := s.Cursor.LastSynced()
	if err != nil {
		return "", err
	}
	if mark != "" {
		return mark, nil
	}

	dates, err := s.WS.DateColumn()
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", nil
	}
	last := dates[len(dates)-1]
	if _, err := model.ParseDate(last); err != nil {
		return "", &AccessError{Op: "read high-water mark", Err: fmt.Errorf("last row %q is not a date", last)}
	}
	return last, nil
}

func (s *Syncer) advanceCursor(date string) {
	if date == "" {
		return
	}
	if err := s.Cursor.SetLastSynced(date); err != nil {
		log.Printf("[ERROR] save sync cursor: %v", err)
	}
}

func toRows(ser model.Series) [][]interface{} {
	rows := make([][]interface{}, len(ser))
	for i, p := range ser {
		rows[i] = []interface{}{p.Date, p.Value}
	}
	return rows
}
