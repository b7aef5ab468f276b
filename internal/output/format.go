package output

import (
	"fmt"
	"strconv"
)

// FormatBytes renders a byte count in a human unit.
func FormatBytes(n int64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.2f GB", float64(n)/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2f MB", float64(n)/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1f kB", float64(n)/1e3)
	default:
		return strconv.FormatInt(n, 10) + " B"
	}
}

// FormatCount renders n with thousands separators.
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 || len(s) <= 3 {
		return s
	}
	var b []byte
	lead := len(s) % 3
	if lead > 0 {
		b = append(b, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(b) > 0 {
			b = append(b, ',')
		}
		b = append(b, s[i:i+3]...)
	}
	return string(b)
}

// FormatRate renders a records-per-second rate.
func FormatRate(perSec float64) string {
	if perSec >= 100 {
		return fmt.Sprintf("%.0f rec/s", perSec)
	}
	return fmt.Sprintf("%.1f rec/s", perSec)
}
