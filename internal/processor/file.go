package processor

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/voice-minutes/internal/speech"
)

// ProcessFile generates minutes from a transcript file dropped into the inbox.
// The file's modification date stands in for the session start date. On
// success the transcript is archived so it is not picked up again.
func (p *implProcessor) ProcessFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat transcript: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	req := Request{
		Text:      string(content),
		StartDate: info.ModTime().Format(speech.DateLayout),
	}
	if isBlank(req.Text) {
		p.logger.Warn(ctx, "Skipping empty transcript: %s", path)
		return ErrEmptyText
	}

	// Wait for any in-flight generation instead of failing busy.
	if err := p.slot.wait(ctx); err != nil {
		return err
	}
	defer p.slot.release()

	if _, err := p.generate(ctx, req); err != nil {
		return err
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to archive transcript: %v", err)
	}
	return nil
}
