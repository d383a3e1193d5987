package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "Great work on **gradient descent**!", "Great work on gradient descent!"},
		{"italic", "See *Week 3* slides", "See Week 3 slides"},
		{"mixed", "**Hi Ada**, your *notes* rock", "Hi Ada, your notes rock"},
		{"link", "Resources: [Drive folder](https://drive.google.com/x)", "Resources: Drive folder (https://drive.google.com/x)"},
		{"untouched", "Plain text\n\nSecond paragraph", "Plain text\n\nSecond paragraph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderPlain(tt.in))
		})
	}
}

func TestRenderHTML(t *testing.T) {
	body := "Hi **Ada**,\n\nYour *notes* are great.\nSee https://example.com/res and [slides](https://example.com/slides)."

	out, err := RenderHTML(body)

	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Ada</strong>")
	assert.Contains(t, out, "<em>notes</em>")
	assert.Contains(t, out, `href="https://example.com/res"`)
	assert.Contains(t, out, `href="https://example.com/slides"`)
	assert.Contains(t, out, "<br")
	assert.Equal(t, 2, strings.Count(out, "<p>"), "blank line separates paragraphs")
}

func TestRenderHTML_StripsScripts(t *testing.T) {
	out, err := RenderHTML("hello <script>alert(1)</script>")

	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}
