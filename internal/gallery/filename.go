package gallery

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// allowedExtensions maps each accepted extension to the content type its
// bytes must sniff as.
var allowedExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedExtension returns the lowercased extension of name if it is one of
// the accepted image extensions.
func AllowedExtension(name string) (string, bool) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", false
	}
	ext := strings.ToLower(name[idx+1:])
	_, ok := allowedExtensions[ext]
	return ext, ok
}

// MatchesExtension reports whether a sniffed content type is the one
// expected for an accepted extension.
func MatchesExtension(ext, contentType string) bool {
	want, ok := allowedExtensions[ext]
	return ok && want == contentType
}

// SanitizeFilename reduces a client-supplied name to a flat ASCII name that
// cannot address anything outside the current directory.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	cleaned := strings.NewReplacer("/", " ", `\`, " ").Replace(b.String())
	cleaned = strings.Join(strings.Fields(cleaned), "_")
	cleaned = unsafeFilenameChars.ReplaceAllString(cleaned, "")
	return strings.Trim(cleaned, "._")
}

// StoredName is the blob key for a new upload with the given extension.
func StoredName(ext string) string {
	return uuid.NewString() + "." + ext
}
