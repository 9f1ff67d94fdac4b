package normalisers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Normaliser
	}{
		{name: "markdown", path: "handbook.md", expected: Markdown{}},
		{name: "markdown long extension", path: "notes.markdown", expected: Markdown{}},
		{name: "html", path: "page.html", expected: HTML{}},
		{name: "htm", path: "page.htm", expected: HTML{}},
		{name: "uppercase extension", path: "README.MD", expected: Markdown{}},
		{name: "plain text", path: "policy.txt", expected: Plaintext{}},
		{name: "no extension", path: "LICENSE", expected: Plaintext{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForPath(tt.path))
		})
	}
}

func TestPlaintext_Normalise(t *testing.T) {
	content := "1. VACATION POLICY\nEmployees get 15 days.\n"
	assert.Equal(t, content, Plaintext{}.Normalise(content))
}

func TestMarkdown_Normalise(t *testing.T) {
	t.Run("strips headings and emphasis", func(t *testing.T) {
		input := "# Vacation Policy\n\nEmployees get **15 days** of *paid* vacation.\n"
		out := Markdown{}.Normalise(input)

		assert.Equal(t, "Vacation Policy\n\nEmployees get 15 days of paid vacation.", out)
	})

	t.Run("converts links to text", func(t *testing.T) {
		out := Markdown{}.Normalise("See the [policy](https://example.com/policy).")
		assert.Equal(t, "See the policy.", out)
	})

	t.Run("removes code blocks and inline code", func(t *testing.T) {
		input := "Run this:\n\n```\nrm -rf /\n```\n\nUse `docchat` afterwards."
		out := Markdown{}.Normalise(input)

		assert.NotContains(t, out, "rm -rf")
		assert.NotContains(t, out, "docchat")
		assert.Contains(t, out, "Run this:")
	})

	t.Run("keeps numbered section headings", func(t *testing.T) {
		input := "1. VACATION POLICY\n\nEmployees get 15 days.\n"
		out := Markdown{}.Normalise(input)

		assert.Contains(t, out, "1. VACATION POLICY")
	})

	t.Run("strips list markers and rules", func(t *testing.T) {
		input := "- first\n- second\n\n---\n\n> quoted\n"
		out := Markdown{}.Normalise(input)

		assert.Contains(t, out, "first")
		assert.NotContains(t, out, "- first")
		assert.NotContains(t, out, "---")
		assert.NotContains(t, out, "> quoted")
		assert.Contains(t, out, "quoted")
	})
}

func TestHTML_Normalise(t *testing.T) {
	t.Run("strips tags keeping block breaks", func(t *testing.T) {
		input := "<html><head><title>x</title></head><body>" +
			"<h1>VACATION POLICY</h1><p>Employees get 15 days.</p></body></html>"
		out := HTML{}.Normalise(input)

		assert.Contains(t, out, "VACATION POLICY")
		assert.Contains(t, out, "Employees get 15 days.")
		assert.NotContains(t, out, "<")
		// Heading and paragraph end up as separate paragraphs.
		assert.Contains(t, out, "VACATION POLICY\n\nEmployees get 15 days.")
	})

	t.Run("drops scripts and styles", func(t *testing.T) {
		input := "<p>visible</p><script>alert(1)</script><style>p{color:red}</style>"
		out := HTML{}.Normalise(input)

		assert.Contains(t, out, "visible")
		assert.NotContains(t, out, "alert")
		assert.NotContains(t, out, "color")
	})

	t.Run("decodes entities", func(t *testing.T) {
		out := HTML{}.Normalise("<p>Fish &amp; chips</p>")
		assert.Equal(t, "Fish & chips", out)
	})
}
