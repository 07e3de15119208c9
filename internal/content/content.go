// Package content holds the pure text transforms applied to notes at render time.
package content

import (
	"encoding/base64"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// MaskGlyph replaces the masked part of a banned word.
const MaskGlyph = "🆖"

// linkPattern matches http(s) URLs up to the next whitespace rune, Unicode spaces included.
var linkPattern = regexp.MustCompile(`https?://[^\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`)

// ReplaceNGWords masks every case-insensitive occurrence of each word.
// Words are applied in list order, each to the output of the previous one,
// so a later word may match text produced by an earlier replacement.
func ReplaceNGWords(src string, words []string) string {
	result := src
	for _, word := range words {
		n := utf8.RuneCountInString(word)
		if n == 0 {
			continue
		}
		// words come from the store as-is; invalid UTF-8 cannot form a pattern
		pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(word))
		if err != nil {
			continue
		}
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			if n == 1 {
				return MaskGlyph
			}
			return maskMatch(match)
		})
	}
	return result
}

// maskMatch keeps the first rune of the matched text, masks the second and keeps the rest.
func maskMatch(match string) string {
	first, size := utf8.DecodeRuneInString(match)
	rest := match[size:]
	if rest == "" {
		return MaskGlyph
	}
	_, size = utf8.DecodeRuneInString(rest)
	return string(first) + MaskGlyph + rest[size:]
}

// ContentToLinkSets returns every URL in content, newline-joined in order of appearance.
func ContentToLinkSets(content string) string {
	return strings.Join(linkPattern.FindAllString(content, -1), "\n")
}

// IPToUID derives the short poster tag shown next to a note.
func IPToUID(ip string) string {
	if ip == "" {
		return "-"
	}
	enc := base64.StdEncoding.EncodeToString([]byte(ip))
	if len(enc) > 11 {
		return enc[len(enc)-11:]
	}
	return enc
}

// IsOverNHours reports whether t lies more than n hours before now.
func IsOverNHours(t time.Time, hours int, now time.Time) bool {
	return now.Sub(t) > time.Duration(hours)*time.Hour
}
