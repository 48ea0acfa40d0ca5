package metrics

import (
	"os"

	"github.com/dustin/go-humanize"
)

// DatabaseSize returns the on-disk size of the database file as a
// human-readable string, or "unavailable" when running in-memory.
func DatabaseSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unavailable"
	}
	return humanize.Bytes(uint64(info.Size()))
}
