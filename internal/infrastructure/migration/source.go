package migration

import (
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// Migration describes one versioned migration found in a source
type Migration struct {
	Version uint
	Name    string
	HasDown bool
}

// List returns the migrations in src ordered by version. Every version must
// have an up file; a down file is optional.
func List(src fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	byVersion := make(map[uint]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version, name, direction, ok := parseFileName(entry.Name())
		if !ok {
			continue
		}
		mig, exists := byVersion[version]
		if !exists {
			mig = &Migration{Version: version}
			byVersion[version] = mig
		}
		switch direction {
		case "up":
			mig.Name = name
		case "down":
			mig.HasDown = true
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.Name == "" {
			return nil, fmt.Errorf("migration %06d has no up file", mig.Version)
		}
		out = append(out, *mig)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// parseFileName splits "000001_init_schema.up.sql" into its parts
func parseFileName(fileName string) (uint, string, string, bool) {
	base, ok := strings.CutSuffix(fileName, ".sql")
	if !ok {
		return 0, "", "", false
	}
	dot := strings.LastIndexByte(base, '.')
	if dot < 0 {
		return 0, "", "", false
	}
	direction := base[dot+1:]
	if direction != "up" && direction != "down" {
		return 0, "", "", false
	}
	versionPart, name, ok := strings.Cut(base[:dot], "_")
	if !ok {
		return 0, "", "", false
	}
	version, err := strconv.ParseUint(versionPart, 10, 32)
	if err != nil {
		return 0, "", "", false
	}
	return uint(version), name, direction, true
}
