package notifier

import (
	"fmt"

	"rhodlsync/internal/model"
)

// FormatRunReport renders the success message for one sync run.
func FormatRunReport(mode model.SyncMode, written int, latest string) string {
	if written == 0 {
		return fmt.Sprintf("✅ RHODL sync (%s): sheet already up to date (latest %s)", mode, latest)
	}
	return fmt.Sprintf("✅ RHODL sync (%s): wrote %d rows, latest %s", mode, written, latest)
}

// FormatFailure renders the failure message for an aborted run.
func FormatFailure(mode model.SyncMode, err error) string {
	return fmt.Sprintf("❌ RHODL sync (%s) failed: %v", mode, err)
}
