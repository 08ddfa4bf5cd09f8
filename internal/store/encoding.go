package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// TimeLayout is how timestamps are written to the sheet (day/month/year).
const TimeLayout = "02/01/2006 15:04:05"

// Sheet encodings.
const (
	flagSet        = "V"
	statusStored   = "X"
	statusPickedUp = "V"
	boolTrue       = "TRUE"
	boolFalse      = "FALSE"
)

// now is the clock used for deposit and pickup times.
var now = time.Now

func formatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// parseTime accepts the sheet layout with an optional leading apostrophe,
// which spreadsheets use to force a text cell.
func parseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, strings.TrimPrefix(s, "'"), time.Local)
}

func formatBool(b bool) string {
	if b {
		return boolTrue
	}
	return boolFalse
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), boolTrue)
}

func isFlagSet(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), flagSet)
}

func encodeStatus(status string) string {
	if status == model.ItemStatusPickedUp {
		return statusPickedUp
	}
	return statusStored
}

func decodeStatus(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case statusStored, strings.ToUpper(model.ItemStatusStored):
		return model.ItemStatusStored, nil
	case statusPickedUp, strings.ToUpper(model.ItemStatusPickedUp):
		return model.ItemStatusPickedUp, nil
	default:
		return "", fmt.Errorf("unknown item status %q", s)
	}
}
