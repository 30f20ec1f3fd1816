// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bot

import (
	"fmt"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	t.Run("empty items yield the empty message", func(t *testing.T) {
		got := render("header", nil, "nothing found")
		if len(got) != 1 || got[0] != "nothing found" {
			t.Errorf("got %v, want single empty message", got)
		}
	})

	t.Run("header and items joined by newlines", func(t *testing.T) {
		got := render("header", []string{"one", "two"}, "nothing found")
		if len(got) != 1 {
			t.Fatalf("got %d messages, want 1", len(got))
		}
		if got[0] != "header\none\ntwo" {
			t.Errorf("message = %q", got[0])
		}
	})
}

func TestSplitMessageShortText(t *testing.T) {
	got := splitMessage("short", messageLimit)
	if len(got) != 1 || got[0] != "short" {
		t.Errorf("got %v, want the text unchanged", got)
	}
}

func TestSplitMessageRespectsLimit(t *testing.T) {
	// 200 lines of 99 bytes: far over a single message.
	var lines []string
	for i := 0; i < 200; i++ {
		lines = append(lines, fmt.Sprintf("line %03d %s", i, strings.Repeat("x", 90)))
	}
	text := strings.Join(lines, "\n")

	chunks := splitMessage(text, messageLimit)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > messageLimit {
			t.Errorf("chunk %d is %d bytes, over the limit", i, len(c))
		}
	}
}

func TestSplitMessageReconstructs(t *testing.T) {
	// With no oversized line, joining the chunks with newlines must
	// reproduce the input exactly.
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, fmt.Sprintf("entry %d", i))
		if i%7 == 0 {
			lines = append(lines, "") // empty lines must survive
		}
	}
	text := strings.Join(lines, "\n")

	chunks := splitMessage(text, 100)
	if got := strings.Join(chunks, "\n"); got != text {
		t.Errorf("reconstruction differs:\ngot  %q\nwant %q", got, text)
	}
}

func TestSplitMessageOversizedLine(t *testing.T) {
	line := strings.Repeat("a", 250)
	chunks := splitMessage(line, 100)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d is %d bytes", i, len(c))
		}
	}
	if strings.Join(chunks, "") != line {
		t.Error("hard-split chunks do not reassemble the line")
	}
}

func TestSplitMessageBoundary(t *testing.T) {
	// Exactly at the limit: no split.
	text := strings.Repeat("a", 100)
	if got := splitMessage(text, 100); len(got) != 1 {
		t.Errorf("got %d chunks for text at the limit, want 1", len(got))
	}
}
