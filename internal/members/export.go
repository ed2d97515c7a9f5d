package members

import (
	"fmt"
	"strings"

	"github.com/youruser/rankcard/internal/rankcard"
)

// ExportLeaderboardText renders the leaderboard as plain text, one ranked
// member per line, with XP abbreviated the same way the cards show it.
func ExportLeaderboardText(ms []Member) string {
	ranked := SortByProgress(ms)
	lines := make([]string, 0, len(ranked))
	for i, m := range ranked {
		lines = append(lines, fmt.Sprintf("#%d %s - level %d (%s/%s)",
			i+1, m.Username, m.Level,
			rankcard.FormatNumber(m.CurrentXP), rankcard.FormatNumber(m.MaxXP)))
	}
	return strings.Join(lines, "\n")
}
