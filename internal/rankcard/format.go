package rankcard

import (
	"fmt"
	"strconv"
)

// FormatNumber abbreviates an XP or level value for display on the card:
// millions get an "M" suffix, thousands a "K" suffix, both with three
// decimal places; smaller values pass through unchanged.
func FormatNumber(n uint) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.3fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.3fK", float64(n)/1000)
	default:
		return strconv.FormatUint(uint64(n), 10)
	}
}
