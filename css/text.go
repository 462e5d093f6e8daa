package css

import "regexp"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var uriInner = regexp.MustCompile(`(?is)^url\(\s*(.*?)\s*\)$`)

// unquoteString strips the surrounding quote pair from a STRING token's
// raw text. The token is guaranteed balanced by the table's STRING
// pattern, so no escaping work is needed beyond dropping the delimiters.
func unquoteString(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// stripURI reduces a URI token's raw text ("url(foo.css)", `url("foo.css")`)
// to the bare URI.
func stripURI(s string) string {
	m := uriInner.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return unquoteString(m[1])
}
