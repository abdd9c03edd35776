package textutil

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	unsafeChars   = regexp.MustCompile(`[^\w\s-]`)
	dashWhitespace = regexp.MustCompile(`[-\s]+`)
	fileUnsafe    = regexp.MustCompile(`[^\w\s.-]`)
)

// asciiFold strips diacritics and drops any remaining non-ASCII runes,
// NFKD-decomposing first so accented letters keep their base form.
func asciiFold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range folded {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slug lowers, strips unsafe characters and hyphenates whitespace runs,
// producing the filesystem-safe segment used in candidate storage prefixes.
func Slug(s string) string {
	s = unsafeChars.ReplaceAllString(s, "")
	s = strings.ToLower(strings.TrimSpace(s))
	return dashWhitespace.ReplaceAllString(s, "-")
}

// CandidateDirectory derives the storage prefix owning every uploaded file
// of a candidate. The id suffix keeps prefixes unique across candidates
// sharing a name.
func CandidateDirectory(fullName string, id int64) string {
	return fmt.Sprintf("candidates/%s_%d", Slug(fullName), id)
}

// SafeASCIIFilename transliterates a filename to a legacy-client-safe ASCII
// form: diacritics folded away, unsafe characters removed, whitespace and
// hyphen runs collapsed to underscores.
func SafeASCIIFilename(filename string) string {
	s := asciiFold(filename)
	s = strings.TrimSpace(fileUnsafe.ReplaceAllString(s, ""))
	return dashWhitespace.ReplaceAllString(s, "_")
}

// ContentDisposition builds an attachment header carrying both the ASCII
// filename and the RFC 5987 UTF-8 form derived from the same name.
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s",
		SafeASCIIFilename(filename), url.PathEscape(filename))
}
