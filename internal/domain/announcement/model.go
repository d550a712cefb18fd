package announcement

import (
	"strings"
	"time"
)

// Announcement represents a notice published to all residents
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      string    `json:"date"` //YYYY-MM-DD
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateAnnouncementRequest represents the data needed to publish an announcement
type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" validate:"notblank"`
}

// titleFrom derives a title from the first non-empty line of content
func titleFrom(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if runes := []rune(line); len(runes) > 80 {
			return string(runes[:80])
		}
		return line
	}
	return ""
}
