package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MigrationFiles holds the paths of a freshly created migration pair
type MigrationFiles struct {
	Version  string
	UpPath   string
	DownPath string
}

var nameSanitizer = regexp.MustCompile(`[^a-z0-9_]+`)

// CreateMigration writes an empty up/down SQL file pair named
// <timestamp>_<name>.{up,down}.sql under dir.
func CreateMigration(dir, name string) (*MigrationFiles, error) {
	slug := nameSanitizer.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return nil, fmt.Errorf("migration name must contain letters or digits")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := time.Now().UTC().Format("20060102150405")
	mf := &MigrationFiles{
		Version:  version,
		UpPath:   filepath.Join(dir, fmt.Sprintf("%s_%s.up.sql", version, slug)),
		DownPath: filepath.Join(dir, fmt.Sprintf("%s_%s.down.sql", version, slug)),
	}

	header := fmt.Sprintf("-- %s\n", slug)
	if err := os.WriteFile(mf.UpPath, []byte(header), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write up migration: %w", err)
	}
	if err := os.WriteFile(mf.DownPath, []byte(header), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write down migration: %w", err)
	}
	return mf, nil
}
