package cli

import "fmt"

// FormatGB formats a size in gigabytes to a human readable string.
func FormatGB(gb float64) string {
	switch {
	case gb >= 1024:
		return fmt.Sprintf("%.2f TB", gb/1024)
	case gb >= 1:
		return fmt.Sprintf("%.1f GB", gb)
	case gb > 0:
		return fmt.Sprintf("%.0f MB", gb*1024)
	}
	return "0 B"
}

// FormatRows formats a row count with thousands separators.
func FormatRows(n int64) string {
	if n < 0 {
		return "-" + FormatRows(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatRows(n/1000), n%1000)
}
