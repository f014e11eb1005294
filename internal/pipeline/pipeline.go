// Package pipeline wires one sync run: fetch, filter, local cache write,
// sheet reconciliation, cursor/run bookkeeping. Strictly sequential; the
// first failure aborts the run before any later side effect.
package pipeline

import (
	"fmt"
	"log"

	"rhodlsync/internal/cache"
	"rhodlsync/internal/collector"
	"rhodlsync/internal/model"
	"rhodlsync/internal/notifier"
	"rhodlsync/internal/recorder"
	"rhodlsync/internal/series"
	"rhodlsync/internal/sheets"
)

// Pipeline holds the collaborators of a run.
type Pipeline struct {
	Fetcher   collector.Fetcher
	Cutoff    string
	CachePath string
	Syncer    *sheets.Syncer
	Recorder  recorder.Recorder
	Notifier  *notifier.TelegramNotifier
}

// Result summarizes a completed run.
type Result struct {
	Mode        model.SyncMode
	RowsFetched int
	RowsKept    int
	RowsWritten int
	Latest      string
}

// Run executes one sync in the given mode.
func (p *Pipeline) Run(mode model.SyncMode) (*Result, error) {
	res, err := p.run(mode)
	if err != nil {
		p.record(&recorder.RunRecord{Mode: mode, Status: "FAILED", Error: err.Error()})
		p.notify(notifier.FormatFailure(mode, err))
		return nil, err
	}
	p.record(&recorder.RunRecord{
		Mode:        mode,
		RowsFetched: res.RowsFetched,
		RowsKept:    res.RowsKept,
		RowsWritten: res.RowsWritten,
		Status:      "OK",
	})
	p.notify(notifier.FormatRunReport(res.Mode, res.RowsWritten, res.Latest))
	return res, nil
}

func (p *Pipeline) run(mode model.SyncMode) (*Result, error) {
	fetched, err := p.Fetcher.FetchSeries()
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}
	log.Printf("[INFO] fetched %d points from %s", len(fetched), p.Fetcher.Name())

	kept := series.FromCutoff(fetched, p.Cutoff)
	log.Printf("[INFO] %d points remain after cutoff %s", len(kept), p.Cutoff)

	if err := cache.Write(p.CachePath, kept); err != nil {
		return nil, fmt.Errorf("write local cache: %w", err)
	}
	log.Printf("[INFO] saved %d rows to %s", len(kept), p.CachePath)

	written, err := p.Syncer.Sync(mode, kept)
	if err != nil {
		return nil, fmt.Errorf("sync sheet: %w", err)
	}
	log.Printf("[INFO] %s mode: wrote %d rows to the worksheet", mode, written)

	return &Result{
		Mode:        mode,
		RowsFetched: len(fetched),
		RowsKept:    len(kept),
		RowsWritten: written,
		Latest:      kept.Latest(),
	}, nil
}

func (p *Pipeline) record(rec *recorder.RunRecord) {
	if err := p.Recorder.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

func (p *Pipeline) notify(text string) {
	if p.Notifier == nil || !p.Notifier.Enabled() {
		return
	}
	if err := p.Notifier.Send(text); err != nil {
		log.Printf("[WARN] telegram notification failed: %v", err)
	}
}
