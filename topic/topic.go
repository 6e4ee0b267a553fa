// Package topic holds conversation starters pulled from outside sources.
package topic

import (
	"fmt"
	"strings"
)

// Topic is a headline the participants can talk about, independent of
// where it came from.
type Topic struct {
	Title     string
	Summary   string
	SourceURL string
}

// Announcement renders topics as the text of a system message that opens the
// session. It is empty when there is nothing to announce.
func Announcement(topics []*Topic) string {
	if len(topics) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Today's topics:")
	for _, t := range topics {
		fmt.Fprintf(&sb, "\n- %s", t.Title)
		if t.Summary != "" {
			fmt.Fprintf(&sb, ": %s", t.Summary)
		}
	}
	return sb.String()
}
