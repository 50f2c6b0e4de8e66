package services

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/mjcet-acm/site-backend/errs"
)

const (
	// MaxSlugLength is the hard cap on stored slugs.
	MaxSlugLength = 200

	// SlugRetryLimit bounds the collision-avoidance loop during create.
	SlugRetryLimit = 10

	blogIDPrefix   = "blog_"
	suffixLength   = 6
	suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Slugify converts free text into the normalized slug form used for both
// post slugs and categories: lowercase, alphanumeric runs joined by single
// hyphens, no leading or trailing hyphen.
func Slugify(text string) string {
	var b strings.Builder
	lastHyphen := true // suppresses a leading hyphen
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimSuffix(slug[:MaxSlugLength], "-")
	}
	return slug
}

// ValidateSlug checks a client-supplied slug against the canonical format.
func ValidateSlug(slug string) *errs.ApiErr {
	if len(slug) > MaxSlugLength {
		return errs.NewValidationError(errs.CodeSlugTooLong, "slug", "slug must be 200 characters or fewer")
	}
	if !slugPattern.MatchString(slug) {
		return errs.NewValidationError(errs.CodeInvalidSlugFormat, "slug", "slug must contain only lowercase letters, numbers and single hyphens")
	}
	return nil
}

// SlugSuffix returns a short random suffix appended to a slug on collision.
func SlugSuffix() string {
	b := make([]byte, suffixLength)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

// WithSuffix appends a random suffix to base, trimming the base so the
// result stays within MaxSlugLength.
func WithSuffix(base string) string {
	suffix := SlugSuffix()
	maxBase := MaxSlugLength - len(suffix) - 1
	if len(base) > maxBase {
		base = strings.TrimSuffix(base[:maxBase], "-")
	}
	return base + "-" + suffix
}

// NewBlogID generates the externally-exposed opaque post identifier.
func NewBlogID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return blogIDPrefix + raw[:12]
}

// EstimateReadTime derives the reading time in minutes from the content
// word count at 200 words per minute, rounding up.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + 199) / 200
}
