package members

import (
	"sort"
	"strings"
)

type FilterOptions struct {
	IDs       []string
	MinLevel  uint
	MaxLevel  uint // 0 means no upper bound
	FreeWords string
}

func Filter(ms []Member, opt FilterOptions) []Member {
	var out []Member
	for _, m := range ms {
		if len(opt.IDs) > 0 {
			matched := false
			for _, id := range opt.IDs {
				if m.ID == id {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if m.Level < opt.MinLevel {
			continue
		}
		if opt.MaxLevel > 0 && m.Level > opt.MaxLevel {
			continue
		}
		if opt.FreeWords != "" {
			kw := strings.Fields(opt.FreeWords)
			ok := true
			for _, k := range kw {
				k = strings.ToLower(k)
				if !strings.Contains(strings.ToLower(m.Username), k) &&
					!strings.Contains(strings.ToLower(m.ID), k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// FindByID returns the member with the given id, if present.
func FindByID(ms []Member, id string) (Member, bool) {
	for _, m := range ms {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// SortByProgress orders members for the leaderboard: level descending, then
// current XP descending, then username for a stable display order.
func SortByProgress(ms []Member) []Member {
	out := make([]Member, len(ms))
	copy(out, ms)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level > out[j].Level
		}
		if out[i].CurrentXP != out[j].CurrentXP {
			return out[i].CurrentXP > out[j].CurrentXP
		}
		return out[i].Username < out[j].Username
	})
	return out
}
