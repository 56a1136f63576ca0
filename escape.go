package urlfam

import (
	"strconv"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// unreserved reports whether c is left as is by escape.
func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}

// escape percent-encodes every byte of s outside the unreserved set.
// Space becomes %20, never '+'.
func escape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
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
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// join joins items with sep and prefixes the result, unless there are no
// items at all. A lone empty item still gets the prefix.
func join(items []string, sep, prefix string) string {
	if len(items) == 0 {
		return ""
	}
	return prefix + strings.Join(items, sep)
}

func portFragment(port uint16, ok bool) string {
	if !ok {
		return ""
	}
	return ":" + strconv.FormatUint(uint64(port), 10)
}

func pathFragment(paths []string) string {
	encoded := make([]string, len(paths))
	for i, p := range paths {
		encoded[i] = escape(p)
	}
	return join(encoded, "/", "/")
}

func queryFragment(query []Pair) string {
	encoded := make([]string, len(query))
	for i, q := range query {
		encoded[i] = escape(q.Key) + "=" + escape(q.Value)
	}
	return join(encoded, "&", "?")
}
