package capture

import (
	"strings"
	"time"
)

const (
	FilenamePrefix = "true-mirror-"
	FilenameExt    = ".png"

	// isoMillis matches the UTC ISO-8601 form browsers print for instants.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

var pathSafe = strings.NewReplacer(":", "-", ".", "-")

// Filename names a capture taken at t, e.g. true-mirror-2024-05-01T12-34-56-789Z.png.
func Filename(t time.Time) string {
	stamp := t.UTC().Format(isoMillis)
	return FilenamePrefix + pathSafe.Replace(stamp) + FilenameExt
}
