package markup

import "strings"

// DefaultScheme is prepended to scheme-less absolute URLs. Fixed to
// https as a stable contract.
const DefaultScheme = "https://"

// NormalizeURL trims surrounding whitespace and ensures the result is
// usable as a link target:
//
//   - empty input stays empty;
//   - "scheme:..." (any bare alphanumeric scheme token, covering http,
//     mailto, tel, file, and custom app schemes) passes through;
//   - "/path" and "#anchor" pass through (relative / in-page targets);
//   - anything else gets DefaultScheme prepended.
//
// No validation or sanitization beyond this happens here.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if hasScheme(url) {
		return url
	}
	if url[0] == '/' || url[0] == '#' {
		return url
	}
	return DefaultScheme + url
}

// hasScheme reports whether url starts with a non-empty alphanumeric
// token immediately followed by ":".
func hasScheme(url string) bool {
	for i := 0; i < len(url); i++ {
		b := url[i]
		if b == ':' {
			return i > 0
		}
		if !isAlnum(b) {
			return false
		}
	}
	return false
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
