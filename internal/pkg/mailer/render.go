package mailer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	sanitizer = bluemonday.UGCPolicy()

	mdLinkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	mdBoldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdItalicRe = regexp.MustCompile(`\*([^*\n]+)\*`)
)

const htmlWrapper = `<div style="font-family: Arial, sans-serif; padding: 20px; color: #333; line-height: 1.5;">
%s</div>`

// RenderHTML turns the restricted markdown of generated bodies (bold, italic, links, bare
// URLs, blank-line paragraphs) into sanitized HTML.
func RenderHTML(body string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return fmt.Sprintf(htmlWrapper, sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// RenderPlain strips markdown markers; links become "text (url)".
func RenderPlain(body string) string {
	out := mdLinkRe.ReplaceAllString(body, "$1 ($2)")
	out = mdBoldRe.ReplaceAllString(out, "$1")
	out = mdItalicRe.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out)
}
