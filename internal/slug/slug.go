// Package slug derives filesystem-safe output paths from discovered links.
//
// A GitBook href like "/Getting Started/Première Étape/" becomes
// "getting-started/premiere-etape": each path segment is slugified
// independently so "/" survives as a literal directory separator, and the
// result maps directly onto the output tree under the PDF directory.
package slug

import (
	"errors"
	"strings"

	gosimple "github.com/gosimple/slug"
)

// Index is the slug used for the site's home page ("/").
const Index = "index"

// ErrEmptySlug is returned when an href yields no safe characters at all
// (e.g. "#" or a pure-fragment anchor). Callers must skip such links
// without constructing an output path.
var ErrEmptySlug = errors.New("href produced an empty slug")

// FromHref derives a filesystem-safe slug from a root-relative href.
//
// Each "/"-separated segment is slugified on its own: lowercased,
// whitespace collapsed to hyphens, diacritics transliterated, and
// reserved characters dropped. Empty segments vanish, which collapses
// runs of "/" and strips the trailing separator. The root path "/"
// maps to the constant Index.
//
// The function is deterministic: the same href always yields the same slug.
func FromHref(href string) (string, error) {
	trimmed := strings.TrimSpace(href)
	if trimmed == "/" {
		return Index, nil
	}

	segments := make([]string, 0, strings.Count(trimmed, "/")+1)
	for _, segment := range strings.Split(trimmed, "/") {
		s := gosimple.Make(segment)
		if s == "" {
			continue
		}
		segments = append(segments, s)
	}

	if len(segments) == 0 {
		return "", ErrEmptySlug
	}

	return strings.Join(segments, "/"), nil
}
