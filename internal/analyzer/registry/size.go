package registry

import (
	"fmt"

	"github.com/docker/go-units"
)

var sizeUnits = []struct {
	size  int64
	label string
}{
	{1, "B"},
	{units.KiB, "KB"},
	{units.MiB, "MB"},
	{units.GiB, "GB"},
}

// FormatSize renders a byte count in binary units up to GB, e.g. "12.34 MB".
// Counts below one kilobyte are printed as whole bytes.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return fmt.Sprintf("%d B", bytes)
	}

	i := 0
	for i+1 < len(sizeUnits) && bytes >= sizeUnits[i+1].size {
		i++
	}

	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}

	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(sizeUnits[i].size), sizeUnits[i].label)
}
