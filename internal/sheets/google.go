// Package sheets reconciles the RHODL series with a Google Sheets worksheet.
// Only columns A:B of the target tab are owned by this program; anything a
// human adds in columns C and beyond survives a rewrite.
package sheets

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleWorksheet implements Worksheet on the Google Sheets v4 API,
// authenticated with a service-account credential file.
type GoogleWorksheet struct {
	svc           *gsheets.Service
	ctx           context.Context
	spreadsheetID string
	title         string
}

// Open authorizes against the Sheets API and locates the worksheet by title,
// creating it with a header row when missing.
func Open(ctx context.Context, credentialsFile, spreadsheetID, title string) (*GoogleWorksheet, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, &AccessError{Op: "authorize", Err: err}
	}

	w := &GoogleWorksheet{
		svc:           svc,
		ctx:           ctx,
		spreadsheetID: spreadsheetID,
		title:         title,
	}
	if err := w.ensureWorksheet(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *GoogleWorksheet) ensureWorksheet() error {
	ss, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(w.ctx).Do()
	if err != nil {
		return &AccessError{Op: "open spreadsheet", Err: err}
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == w.title {
			return w.ensureHeader()
		}
	}

	log.Printf("[INFO] worksheet %q not found, creating it", w.title)
	_, err = w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: w.title,
					GridProperties: &gsheets.GridProperties{
						RowCount:    1000,
						ColumnCount: 26,
					},
				},
			},
		}},
	}).Context(w.ctx).Do()
	if err != nil {
		return &WriteError{Op: "create worksheet", Err: err}
	}

	return w.writeHeader()
}

// ensureHeader writes the header row when A1 is empty, so the data region
// always starts at row 2 and appends never land above it.
func (w *GoogleWorksheet) ensureHeader() error {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.rangeRef("A1:B1")).
		Context(w.ctx).Do()
	if err != nil {
		return &AccessError{Op: "read header", Err: err}
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}
	return w.writeHeader()
}

func (w *GoogleWorksheet) writeHeader() error {
	header := &gsheets.ValueRange{Values: [][]interface{}{Header}}
	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, w.rangeRef("A1:B1"), header).
		ValueInputOption("RAW").Context(w.ctx).Do()
	if err != nil {
		return &WriteError{Op: "write header", Err: err}
	}
	return nil
}

func (w *GoogleWorksheet) DateColumn() ([]string, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.rangeRef("A2:A")).
		Context(w.ctx).Do()
	if err != nil {
		return nil, &AccessError{Op: "read date column", Err: err}
	}
	dates := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if v := fmt.Sprint(row[0]); v != "" {
			dates = append(dates, v)
		}
	}
	return dates, nil
}

func (w *GoogleWorksheet) Rewrite(rows [][]interface{}) error {
	_, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, w.rangeRef("A:B"),
		&gsheets.ClearValuesRequest{}).Context(w.ctx).Do()
	if err != nil {
		return &WriteError{Op: "clear columns A:B", Err: err}
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, Header)
	values = append(values, rows...)

	_, err = w.svc.Spreadsheets.Values.Update(w.spreadsheetID, w.rangeRef("A1"),
		&gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(w.ctx).Do()
	if err != nil {
		return &WriteError{Op: "write rows", Err: err}
	}
	return nil
}

func (w *GoogleWorksheet) Append(rows [][]interface{}) error {
	_, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, w.rangeRef("A:B"),
		&gsheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(w.ctx).Do()
	if err != nil {
		return &WriteError{Op: "append rows", Err: err}
	}
	return nil
}

// rangeRef builds an A1-notation range scoped to the worksheet. The title is
// quoted because it contains spaces.
func (w *GoogleWorksheet) rangeRef(ref string) string {
	return fmt.Sprintf("'%s'!%s", w.title, ref)
}
