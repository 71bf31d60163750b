package oauth1

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// PercentEncode escapes every byte outside the RFC 3986 unreserved set
// (A-Z a-z 0-9 - . _ ~) as %XX with uppercase hex.
func PercentEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func shouldEscape(c byte) bool {
	if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '.', '_', '~':
		return false
	}
	return true
}

type pair struct{ key, value string }

// normalizeParams percent-encodes every key and value, expands multi-valued
// keys into one pair per value and sorts by encoded key, then encoded value.
func normalizeParams(params url.Values) string {
	pairs := make([]pair, 0, len(params))
	for k, vs := range params {
		ek := PercentEncode(k)
		for _, v := range vs {
			pairs = append(pairs, pair{ek, PercentEncode(v)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.key + "=" + p.value
	}
	return strings.Join(parts, "&")
}

// baseURL reduces rawURL to scheme://host/path. Query and fragment are dropped.
func baseURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("oauth1: parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("oauth1: url %q is not absolute", rawURL)
	}
	return u.Scheme + "://" + u.Host + u.EscapedPath(), nil
}

// BaseString builds the signature base string
// METHOD&enc(scheme://host/path)&enc(sorted params).
// params must already contain the oauth_* fields that take part in signing.
func BaseString(method, rawURL string, params url.Values) (string, error) {
	base, err := baseURL(rawURL)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(method) + "&" + PercentEncode(base) + "&" + PercentEncode(normalizeParams(params)), nil
}
