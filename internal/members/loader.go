package members

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/youruser/rankcard/internal/util"
)

// LoadMembersFromDataDir loads member CSVs from a data directory
// (best-effort). members.csv is the main file; custom_members.csv is
// optional and appended if present.
func LoadMembersFromDataDir(dataDir string) ([]Member, error) {
	files := []string{
		filepath.Join(dataDir, "members.csv"),
		filepath.Join(dataDir, "custom_members.csv"),
	}

	var all []Member
	var found bool
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			// skip missing files
			continue
		}
		found = true
		ms, err := loadSingleCSV(f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
		all = append(all, ms...)
	}
	if !found {
		return nil, fmt.Errorf("no member CSVs found in %s", dataDir)
	}
	return all, nil
}

func loadSingleCSV(path string) ([]Member, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	header := rows[0]
	cols := map[string]int{}
	for i, h := range header {
		cols[h] = i
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return row[idx]
		}
		return ""
	}
	getUint := func(row []string, name string) uint {
		v, _ := strconv.ParseUint(get(row, name), 10, 64)
		return uint(v)
	}

	out := []Member{}
	for _, row := range rows[1:] {
		m := Member{
			ID:        get(row, "id"),
			Username:  get(row, "username"),
			Level:     getUint(row, "level"),
			CurrentXP: getUint(row, "current_xp"),
			MaxXP:     getUint(row, "max_xp"),
			AvatarURL: get(row, "avatar_url"),
		}
		if m.ID == "" {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// SaveMembers writes the member list to members.csv under dataDir, creating
// the directory if needed.
func SaveMembers(dataDir string, ms []Member) error {
	if err := util.EnsureDir(dataDir); err != nil {
		return err
	}
	fp, err := os.Create(filepath.Join(dataDir, "members.csv"))
	if err != nil {
		return err
	}
	defer fp.Close()

	w := csv.NewWriter(fp)
	if err := w.Write([]string{"id", "username", "level", "current_xp", "max_xp", "avatar_url"}); err != nil {
		return err
	}
	for _, m := range ms {
		row := []string{
			m.ID,
			m.Username,
			strconv.FormatUint(uint64(m.Level), 10),
			strconv.FormatUint(uint64(m.CurrentXP), 10),
			strconv.FormatUint(uint64(m.MaxXP), 10),
			m.AvatarURL,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
