package sources

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		raw  string
		base string
		want string
	}{
		{"/berita/a", "https://site.test/", "https://site.test/berita/a"},
		{"berita/a", "https://site.test/sub/", "https://site.test/sub/berita/a"},
		{"https://other.test/x", "https://site.test/", "https://other.test/x"},
		{"  /spasi  ", "https://site.test/", "https://site.test/spasi"},
		{"", "https://site.test/", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveURL(tt.raw, tt.base), "raw %q", tt.raw)
	}
}

func TestTimeTagValue(t *testing.T) {
	parse := func(html string) *goquery.Selection {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		require.NoError(t, err)
		return doc.Selection
	}

	assert.Equal(t, "2025-08-20T10:30:00+07:00",
		timeTagValue(parse(`<time datetime="2025-08-20T10:30:00+07:00">20 Agu</time>`)))
	assert.Equal(t, "20 Agustus 2025",
		timeTagValue(parse(`<time>  20 Agustus 2025  </time>`)))
	assert.Equal(t, "fallback text",
		timeTagValue(parse(`<time datetime="   ">fallback text</time>`)))
	assert.Empty(t, timeTagValue(parse(`<p>no time element</p>`)))
}

func TestResponseSnippet(t *testing.T) {
	assert.Equal(t, "<empty>", responseSnippet(nil))
	assert.Equal(t, "short", responseSnippet([]byte("  short  ")))

	long := responseSnippet([]byte(strings.Repeat("x", 2000)))
	assert.Len(t, long, 512+len("..."))
}

func TestFetchDocumentTruncatesOversizedBody(t *testing.T) {
	huge := strings.Repeat("<p>padding</p>", maxHTMLBodyBytes/10)
	client := &fakeClient{pages: map[string]string{"https://site.test/big": huge}}

	doc, err := fetchDocument(context.Background(), client, "https://site.test/big", "test-agent")
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestRequestHeadersCarryUserAgent(t *testing.T) {
	h := requestHeaders("custom-agent")
	assert.Equal(t, "custom-agent", h["User-Agent"])
	assert.NotEmpty(t, h["Accept"])
}
