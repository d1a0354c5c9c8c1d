package util

import "fmt"

// HumanBytes renders a byte count for download progress and cache info
// lines, e.g. "3.2 MB".
func HumanBytes(n int64) string {
	size := float64(n)
	for _, unit := range []string{"bytes", "KB", "MB", "GB", "TB"} {
		if size < 1024.0 {
			if unit == "bytes" {
				return fmt.Sprintf("%d %s", n, unit)
			}
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f PB", size)
}
