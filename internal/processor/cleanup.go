package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// moveToArchived moves a processed transcript into the archive folder. An
// existing archive entry with the same name is kept; the new one gets a
// timestamp suffix.
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))
	if _, err := os.Stat(destPath); err == nil {
		destPath = archiveName(destPath, time.Now())
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat archive entry: %w", err)
	}

	p.logger.Info(ctx, "Archiving transcript: %s -> %s", path, destPath)
	if err := os.Rename(path, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// archiveName turns dir/notes.txt into dir/notes_20240101-093000.txt.
func archiveName(path string, now time.Time) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + now.Format("20060102-150405") + ext
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
