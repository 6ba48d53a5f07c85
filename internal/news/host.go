package news

import (
	"net/url"
	"strings"
)

// SourceHost returns the hostname of href with a leading "www." removed.
// ok is false when href is not an absolute URL with a host.
func SourceHost(href string) (host string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return "", false
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www."), true
}
