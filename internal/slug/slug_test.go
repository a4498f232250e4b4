package slug

import (
	"errors"
	"testing"
)

func TestFromHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "root path maps to index", href: "/", want: Index},
		{name: "simple path", href: "/intro", want: "intro"},
		{name: "whitespace becomes hyphen and trailing slash dropped", href: "/Getting Started/", want: "getting-started"},
		{name: "repeated separators collapse", href: "//a///b//", want: "a/b"},
		{name: "nested path keeps separators", href: "/guides/advanced/hooks", want: "guides/advanced/hooks"},
		{name: "uppercase is lowered", href: "/FAQ", want: "faq"},
		{name: "diacritics are transliterated", href: "/Première Étape", want: "premiere-etape"},
		{name: "surrounding whitespace trimmed", href: "  /intro  ", want: "intro"},
		{name: "root with surrounding whitespace", href: " / ", want: Index},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FromHref(tt.href)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FromHref(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestFromHrefEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
	}{
		{name: "fragment only", href: "#"},
		{name: "empty string", href: ""},
		{name: "no safe characters", href: "/###/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := FromHref(tt.href)
			if !errors.Is(err, ErrEmptySlug) {
				t.Errorf("FromHref(%q) error = %v, want ErrEmptySlug", tt.href, err)
			}
		})
	}
}

func TestFromHrefDeterministic(t *testing.T) {
	t.Parallel()

	hrefs := []string{"/", "/Getting Started/", "//a///b//", "/guides/hooks"}
	for _, href := range hrefs {
		first, err := FromHref(href)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", href, err)
		}
		second, err := FromHref(href)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", href, err)
		}
		if first != second {
			t.Errorf("FromHref(%q) not stable: %q then %q", href, first, second)
		}
	}
}
