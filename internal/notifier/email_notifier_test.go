package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"webwatch/internal/config"
)

func newTestNotifier() *EmailNotifier {
	cfg := config.NewDefaultEmailConfig()
	cfg.From = "from@example.com"
	cfg.To = "to@example.com"
	cfg.Password = "secret"

	n := NewEmailNotifier(&cfg, zerolog.Nop())
	n.now = func() time.Time {
		return time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	}
	return n
}

func TestBuildMessage_HeadersAndSubject(t *testing.T) {
	n := newTestNotifier()

	msg := string(n.buildMessage("https://a.example", "old", "new"))

	assert.Contains(t, msg, "From: from@example.com\r\n")
	assert.Contains(t, msg, "To: to@example.com\r\n")
	assert.Contains(t, msg, "Subject: 🌐 Website Change Detected: https://a.example\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8\r\n")
	// Headers and body separated by a blank line.
	assert.Contains(t, msg, "\r\n\r\n")
}

func TestBuildMessage_Body(t *testing.T) {
	n := newTestNotifier()

	msg := string(n.buildMessage("https://a.example", "Hello", "World"))

	assert.Contains(t, msg, "🔔 Website Update Alert")
	assert.Contains(t, msg, "🖥 Website: https://a.example")
	assert.Contains(t, msg, "🕒 Detected Change at: 2025-06-01 14:30:00")
	assert.Contains(t, msg, "📜 Old Content (First 500 chars):\nHello...")
	assert.Contains(t, msg, "🆕 New Content (First 500 chars):\nWorld...")
	assert.Contains(t, msg, "📌 Check the website for full details: https://a.example")
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "short content keeps ellipsis marker",
			content: "Hello",
			want:    "Hello...",
		},
		{
			name:    "empty content",
			content: "",
			want:    "...",
		},
		{
			name:    "long content truncated to limit",
			content: strings.Repeat("a", 600),
			want:    strings.Repeat("a", 500) + "...",
		},
		{
			name:    "exactly at limit not truncated",
			content: strings.Repeat("b", 500),
			want:    strings.Repeat("b", 500) + "...",
		},
		{
			name:    "multibyte content truncated by runes",
			content: strings.Repeat("é", 501),
			want:    strings.Repeat("é", 500) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, snippet(tt.content))
		})
	}
}
