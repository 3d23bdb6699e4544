package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"paragraph with comment", "<p>Hello</p><!-- track -->", "Hello\n"},
		{"plain text passthrough", "just text", "just text"},
		{"entities decoded", "Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
		{"consecutive paragraphs", "<p>one</p><p>two</p>", "one\ntwo\n"},
		{"double br gives blank line", "Line1<br><br>Line2", "Line1\n\nLine2"},
		{"whitespace collapsed", "<div>  a \n\t b  </div>", "a b\n"},
		{"inline tags keep spacing", "say <b>hi</b> now", "say hi now"},
		{"script and style dropped", "<style>p{}</style><script>x()</script>body", "body"},
		{"head dropped", "<html><head><title>T</title></head><body>B</body></html>", "B"},
		{"pre preserved", "<pre>a\n  b</pre>", "a\n  b\n"},
		{"table cells spaced", "<table><tr><td>a</td><td>b</td></tr></table>", "a b\n"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToText(tt.input))
		})
	}
}

func TestToText_MalformedMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unclosed tags", "<div><p>unclosed <b>bold", "unclosed bold"},
		{"stray angle brackets", "a < b > c", "a < b > c"},
		{"lone open bracket", "<<>>", "<<>>"},
		{"unterminated comment", "text<!-- never closed", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { ToText(tt.input) })
			assert.Equal(t, tt.want, ToText(tt.input))
		})
	}
}

func TestToText_EscapedCommentRemoved(t *testing.T) {
	// Escaped markup decodes to a literal comment in the text and must not survive.
	got := ToText("<p>keep &lt;!-- tracking\npixel --&gt; this</p>")
	assert.Equal(t, "keep  this\n", got)
	assert.NotContains(t, got, "<!--")
}

func TestStripComments(t *testing.T) {
	assert.Equal(t, "ab", StripComments("a<!-- x -->b"))
	assert.Equal(t, "ab", StripComments("a<!--\nmulti\nline\n-->b"))
	assert.Equal(t, "a  b", StripComments("a <!--1--> <!--2-->b"))
	assert.Equal(t, "no comments", StripComments("no comments"))
}
