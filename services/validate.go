package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mjcet-acm/site-backend/errs"
)

const (
	// MaxTitleLength caps blog post titles.
	MaxTitleLength = 500
	// MaxExcerptLength caps blog post excerpts.
	MaxExcerptLength = 1000

	// Image dimension bounds in pixels.
	MinImageDimension = 1
	MaxImageDimension = 10000
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Accepted layouts for client-supplied timestamps, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidateTitle enforces presence and the length cap.
func ValidateTitle(title string) *errs.ApiErr {
	if strings.TrimSpace(title) == "" {
		return errs.NewValidationError(errs.CodeMissingTitle, "title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return errs.NewValidationError(errs.CodeTitleTooLong, "title", fmt.Sprintf("title must be %d characters or fewer", MaxTitleLength))
	}
	return nil
}

// ValidateContent enforces presence.
func ValidateContent(content string) *errs.ApiErr {
	if strings.TrimSpace(content) == "" {
		return errs.NewValidationError(errs.CodeMissingContent, "content", "content is required")
	}
	return nil
}

// ValidateExcerpt enforces the length cap; empty excerpts are allowed.
func ValidateExcerpt(excerpt string) *errs.ApiErr {
	if len(excerpt) > MaxExcerptLength {
		return errs.NewValidationError(errs.CodeExcerptTooLong, "excerpt", fmt.Sprintf("excerpt must be %d characters or fewer", MaxExcerptLength))
	}
	return nil
}

// ValidateURL checks URL syntax for image and link fields.
func ValidateURL(field, value string) *errs.ApiErr {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errs.NewValidationError(errs.CodeInvalidURL, field, fmt.Sprintf("%s must be a valid URL", field))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errs.NewValidationError(errs.CodeInvalidURL, field, fmt.Sprintf("%s must use http or https", field))
	}
	return nil
}

// ValidateImageDimension bounds a width or height in pixels.
func ValidateImageDimension(field string, value int) *errs.ApiErr {
	if value < MinImageDimension || value > MaxImageDimension {
		return errs.NewValidationError(errs.CodeInvalidImageDimensions, field,
			fmt.Sprintf("%s must be between %d and %d pixels", field, MinImageDimension, MaxImageDimension))
	}
	return nil
}

// ValidateEmail checks basic email shape.
func ValidateEmail(field, email string) *errs.ApiErr {
	if !emailPattern.MatchString(email) {
		return errs.NewValidationError(errs.CodeInvalidEmail, field, fmt.Sprintf("%s must be a valid email address", field))
	}
	return nil
}

// ValidateEmailDomain enforces the institutional domain on top of the
// shape check. Matching is case-insensitive.
func ValidateEmailDomain(email, domain string) *errs.ApiErr {
	if err := ValidateEmail("email", email); err != nil {
		return err
	}
	if !strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(domain)) {
		return errs.NewValidationError(errs.CodeInvalidEmailDomain, "email",
			fmt.Sprintf("email must belong to the %s domain", domain))
	}
	return nil
}

// ParseDate parses a client-supplied timestamp, accepting RFC3339 and a
// couple of date-only fallbacks.
func ParseDate(field, value string) (time.Time, *errs.ApiErr) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.NewValidationError(errs.CodeInvalidDate, field, fmt.Sprintf("%s is not a valid date", field))
}
