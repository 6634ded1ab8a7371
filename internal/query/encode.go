package query

import "strings"

// Encode serializes predicates as field=operator.value pairs joined by '&'
// and escapes the whole string like a browser's encodeURI.
func Encode(preds []Predicate) string {
	terms := make([]string, len(preds))
	for i, p := range preds {
		terms[i] = p.String()
	}
	return EncodeURI(strings.Join(terms, "&"))
}

const upperHex = "0123456789ABCDEF"

// EncodeURI percent-encodes every byte outside the URI reserved and
// unreserved sets, leaving separators such as '&', '=' and ':' intact.
func EncodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepInURI(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&15])
	}
	return b.String()
}

func keepInURI(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'();/?:@&=+$,#", c) >= 0
}
