package functions

import (
	"regexp"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// Characters left as is by encodeURI and encodeURIComponent, in addition
// to ASCII letters and digits.
const (
	uriUnreserved  = "-_.!~*'()"
	uriReserved    = ";,/?:@&=+$#"
	escapeReplaced = "=:#;()"
)

var formatPlaceholderRe = regexp.MustCompile(`(?i)%[sda]`)

// encodeURI percent-encodes s the way a browser's encodeURI does
// (keepReserved) or encodeURIComponent does.
func encodeURI(s string, keepReserved bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlphaNum(c) || strings.IndexByte(uriUnreserved, c) >= 0 ||
			(keepReserved && strings.IndexByte(uriReserved, c) >= 0) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isAlphaNum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// EscapeURI encodes s for use in a URL, including the characters
// = : # ; ( ) that encodeURI leaves alone.
func EscapeURI(s string) string {
	s = encodeURI(s, true)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(escapeReplaced, c) >= 0 {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// e returns the content of a string without quotes, or the bare magnitude
// of a number.
func e(args []Value) (Value, error) {
	return Anonymous(rawValue(args[0])), nil
}

func escape(args []Value) (Value, error) {
	return Anonymous(EscapeURI(text(args[0]))), nil
}

// format replaces, in order, each %s, %d or %a in the format string with the
// next argument. %s inserts the raw content, %d and %a the CSS form, and
// upper case placeholders are URI component encoded. %% yields %.
func format(args []Value) (Value, error) {
	q, ok := args[0].(Quoted)
	if !ok {
		return nil, argumentError("format must be a string, got %s", kindOf(args[0]))
	}
	s := q.Value
	for _, arg := range args[1:] {
		loc := formatPlaceholderRe.FindStringIndex(s)
		if loc == nil {
			continue
		}
		token := s[loc[0]:loc[1]]

		value := arg.CSS()
		if strings.EqualFold(token, "%s") {
			value = rawValue(arg)
		}
		if token[1] >= 'A' && token[1] <= 'Z' {
			value = encodeURI(value, false)
		}

		s = s[:loc[0]] + value + s[loc[1]:]
	}
	s = strings.ReplaceAll(s, "%%", "%")
	return NewQuoted(s), nil
}

// rawValue is the content of v without quotes or units.
func rawValue(v Value) string {
	if d, ok := v.(Dimension); ok {
		return formatFloat(d.Value)
	}
	return text(v)
}
