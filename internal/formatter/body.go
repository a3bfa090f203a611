package formatter

import (
	"net/url"
	"strings"
)

// BodyFormatter renders notification bodies: escaped text, newlines as
// <br>, and absolute URLs as links. Links pointing at one of the external
// hosts are labelled "View Post" instead of showing the raw URL.
type BodyFormatter struct {
	externalHosts []string
}

func NewBodyFormatter(externalHosts []string) *BodyFormatter {
	hosts := make([]string, 0, len(externalHosts))
	for _, h := range externalHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts = append(hosts, h)
		}
	}
	return &BodyFormatter{externalHosts: hosts}
}

func (f *BodyFormatter) Format(body string) string {
	if body == "" {
		return ""
	}
	lines := strings.Split(Escape(body), "\n")
	for i, line := range lines {
		lines[i] = urlPattern.ReplaceAllStringFunc(line, f.link)
	}
	return strings.Join(lines, "<br>")
}

// link receives an already escaped URL, so it is inserted verbatim.
func (f *BodyFormatter) link(escapedURL string) string {
	text := escapedURL
	if f.isExternal(escapedURL) {
		text = "View Post"
	}
	return `<a href="` + escapedURL + `" target="_blank" class="notif-link">` + text + `</a>`
}

func (f *BodyFormatter) isExternal(rawURL string) bool {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = strings.ToLower(u.Hostname())
	}
	for _, h := range f.externalHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
