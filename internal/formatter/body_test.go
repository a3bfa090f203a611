package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyFormatter_EmptyBody(t *testing.T) {
	f := NewBodyFormatter([]string{"linkedin.com"})
	assert.Equal(t, "", f.Format(""))
}

func TestBodyFormatter_NewlinesBecomeBreaks(t *testing.T) {
	f := NewBodyFormatter(nil)
	assert.Equal(t, "line one<br>line two<br>", f.Format("line one\nline two\n"))
}

func TestBodyFormatter_EscapesBeforeLinking(t *testing.T) {
	f := NewBodyFormatter(nil)
	got := f.Format("<b>3 new posts</b>")
	assert.Equal(t, "&lt;b&gt;3 new posts&lt;/b&gt;", got)
}

func TestBodyFormatter_ExternalHostShowsViewPost(t *testing.T) {
	f := NewBodyFormatter([]string{"linkedin.com"})
	got := f.Format("Ada posted: https://www.linkedin.com/posts/ada-123 check it")
	assert.Equal(t,
		`Ada posted: <a href="https://www.linkedin.com/posts/ada-123" target="_blank" class="notif-link">View Post</a> check it`,
		got)
}

func TestBodyFormatter_OtherHostShowsURL(t *testing.T) {
	f := NewBodyFormatter([]string{"linkedin.com"})
	got := f.Format("docs at http://example.org/guide")
	assert.Equal(t,
		`docs at <a href="http://example.org/guide" target="_blank" class="notif-link">http://example.org/guide</a>`,
		got)
}

func TestBodyFormatter_HostMatchIsNotSubstring(t *testing.T) {
	f := NewBodyFormatter([]string{"linkedin.com"})
	got := f.Format("https://notlinkedin.com/x")
	assert.Contains(t, got, ">https://notlinkedin.com/x</a>")
}

func TestBodyFormatter_MultipleLinksPerLine(t *testing.T) {
	f := NewBodyFormatter([]string{"LinkedIn.com "})
	got := f.Format("a https://linkedin.com/1 b https://linkedin.com/2")
	assert.Equal(t, 2, strings.Count(got, ">View Post</a>"))
}

func TestBodyFormatter_QuotesCannotBreakAttribute(t *testing.T) {
	f := NewBodyFormatter(nil)
	got := f.Format(`https://example.org/"onmouseover="x`)
	assert.NotContains(t, got, `"onmouseover="`)
}
