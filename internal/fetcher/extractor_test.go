package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "prefers main over other regions",
			html: `<html><body>
				<div class="content">sidebar</div>
				<main><p>Article text</p></main>
			</body></html>`,
			want: "Article text",
		},
		{
			name: "falls back to content div",
			html: `<html><body>
				<header>nav</header>
				<div class="content"><p>Promo copy</p></div>
			</body></html>`,
			want: "Promo copy",
		},
		{
			name: "falls back to body",
			html: `<html><body><p>Plain page</p></body></html>`,
			want: "Plain page",
		},
		{
			name: "first main wins when several exist",
			html: `<main>first</main><main>second</main>`,
			want: "first",
		},
		{
			name: "text nodes trimmed and joined without separators",
			html: `<main><p> Hello </p><p>
				World
			</p></main>`,
			want: "HelloWorld",
		},
		{
			name: "nested elements collected in document order",
			html: `<main><div>a<span>b</span>c</div><p>d</p></main>`,
			want: "abcd",
		},
		{
			name: "whitespace-only nodes skipped",
			html: `<main>   <p>  </p>x</main>`,
			want: "x",
		},
		{
			name: "empty document",
			html: ``,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
