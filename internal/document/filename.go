package document

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const maxNameRunes = 30

var (
	// Matches the topic line, e.g. "■1. 議題 ：予算会議" or "1. 議題: 予算会議".
	reTopic  = regexp.MustCompile(`(?m)^(?:■[ \t　]*)?1\.[ \t　]*議題[ \t　]*[:：]?[ \t　]*(.+)$`)
	reUnsafe = regexp.MustCompile(`[/\\:*?"<>|\r\n]`)
)

// FileName derives the output base name from the topic heading, falling back
// to a timestamped name.
func FileName(summary string, now time.Time) string {
	name := ""
	if m := reTopic.FindStringSubmatch(summary); m != nil {
		name = strings.TrimSpace(m[1])
	}
	if name == "" {
		name = fmt.Sprintf("meeting_summary_%d", now.UnixMilli())
	}

	name = reUnsafe.ReplaceAllString(name, "_")
	if runes := []rune(name); len(runes) > maxNameRunes {
		name = string(runes[:maxNameRunes])
	}
	return name
}
