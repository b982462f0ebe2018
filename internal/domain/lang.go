package domain

import "regexp"

var langExpr = regexp.MustCompile(`^([a-z]+(?:-[a-z]+)*)\.wikipedia\.org$`)

// LangCode extracts the language subdomain from a Wikipedia host name:
// "en.wikipedia.org" yields "en", "zh-min-nan.wikipedia.org" yields
// "zh-min-nan". Hosts that do not match the pattern yield "".
func LangCode(host string) string {
	m := langExpr.FindStringSubmatch(host)
	if m == nil {
		return ""
	}
	return m[1]
}
