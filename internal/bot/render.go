// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bot

import "strings"

// messageLimit is Telegram's maximum message length.
const messageLimit = 4096

// render joins a header and formatted item lines into chat messages.
// An empty item list yields exactly one message: the empty text.
func render(header string, items []string, empty string) []string {
	if len(items) == 0 {
		return []string{empty}
	}
	return splitMessage(header+"\n"+strings.Join(items, "\n"), messageLimit)
}

// splitMessage breaks text into chunks of at most limit bytes,
// splitting at line boundaries so no line is broken mid-content.
// Joining the chunks back with newlines reconstructs the text. A single
// line longer than limit cannot honor the boundary rule and is
// hard-split as a last resort.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var (
		chunks []string
		cur    []string
		curLen int
	)
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, strings.Join(cur, "\n"))
			cur, curLen = nil, 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			flush()
			chunks = append(chunks, line[:limit])
			line = line[limit:]
		}

		add := len(line)
		if len(cur) > 0 {
			add++ // joining newline
		}
		if curLen+add > limit {
			flush()
			add = len(line)
		}
		cur = append(cur, line)
		curLen += add
	}
	flush()
	return chunks
}
