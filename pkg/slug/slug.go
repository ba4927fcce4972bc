package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures the slug generation behavior.
type Option func(*config)

type config struct {
	maxLength int
	separator string
	lowercase bool
}

func defaultConfig() *config {
	return &config{
		separator: "-",
		lowercase: true,
	}
}

// MaxLength sets the maximum length of the generated slug in runes.
// Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the separator. Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// Lowercase controls whether the slug is lowercased. Default is true.
func Lowercase(enabled bool) Option {
	return func(c *config) {
		c.lowercase = enabled
	}
}

// Make creates a URL-safe slug: diacritics are folded to ASCII, every run of
// other characters becomes a single separator, and leading or trailing
// separators are dropped. Make is idempotent for a fixed set of options.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s = Fold(s)

	var b strings.Builder
	b.Grow(len(s))

	pendingSep := false
	count := 0
	sepLen := len([]rune(cfg.separator))

	for _, r := range s {
		if !isASCIIAlnum(r) {
			pendingSep = count > 0
			continue
		}
		if pendingSep {
			if cfg.maxLength > 0 && count+sepLen+1 > cfg.maxLength {
				break
			}
			b.WriteString(cfg.separator)
			count += sepLen
			pendingSep = false
		}
		if cfg.maxLength > 0 && count >= cfg.maxLength {
			break
		}
		if cfg.lowercase {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
		count++
	}

	return b.String()
}

// Fold strips combining marks after canonical decomposition, turning
// "Crème Brûlée" into "Creme Brulee". Letters without a decomposition
// (ø, ß, ł) are left untouched.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
