package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable error codes returned in the response envelope.
const (
	CodeMissingTitle           = "MISSING_TITLE"
	CodeMissingContent         = "MISSING_CONTENT"
	CodeMissingCategory        = "MISSING_CATEGORY"
	CodeMissingAuthorName      = "MISSING_AUTHOR_NAME"
	CodeTitleTooLong           = "TITLE_TOO_LONG"
	CodeExcerptTooLong         = "EXCERPT_TOO_LONG"
	CodeInvalidURL             = "INVALID_URL"
	CodeInvalidImageDimensions = "INVALID_IMAGE_DIMENSIONS"
	CodeInvalidStatus          = "INVALID_STATUS"
	CodeInvalidPostType        = "INVALID_POST_TYPE"
	CodeInvalidDate            = "INVALID_DATE"
	CodeInvalidSlugFormat      = "INVALID_SLUG_FORMAT"
	CodeSlugTooLong            = "SLUG_TOO_LONG"
	CodeDuplicateSlug          = "DUPLICATE_SLUG"
	CodeDuplicateEntry         = "DUPLICATE_ENTRY"
	CodeSlugExhausted          = "SLUG_GENERATION_EXHAUSTED"
	CodeBlogNotFound           = "BLOG_NOT_FOUND"
	CodeAlreadyArchived        = "ALREADY_ARCHIVED"
	CodeNotArchived            = "NOT_ARCHIVED"
	CodeInvalidPagination      = "INVALID_PAGINATION"
	CodeMissingRequiredFields  = "MISSING_REQUIRED_FIELDS"
	CodeInvalidEmail           = "INVALID_EMAIL"
	CodeInvalidEmailDomain     = "INVALID_EMAIL_DOMAIN"
	CodeNoValidFields          = "NO_VALID_FIELDS"
	CodeProfileNotFound        = "PROFILE_NOT_FOUND"
	CodeInvalidPayload         = "INVALID_PAYLOAD"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeRateLimited            = "RATE_LIMITED"
	CodeInternal               = "INTERNAL_SERVER_ERROR"
)

// Common error sentinel values
var (
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
	ErrConflict     = errors.New("resource conflict")
	ErrNotFound     = errors.New("not found")
)

// ApiErr carries everything the responder needs to render a failure: the
// HTTP status, the stable envelope code, and a human-readable message.
type ApiErr struct {
	StatusCode int
	Code       string
	err        error
	Field      string // field that caused the error (for validation errors)
	Cause      error  // the underlying cause of the error
}

func NewApiErr(statusCode int, code, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		Code:       code,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr
// as an argument of type `error`
func (e *ApiErr) Error() string {
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// WithField attaches the offending field name to a validation error.
func (e *ApiErr) WithField(field string) *ApiErr {
	e.Field = field
	return e
}

// Common error constructors with appropriate HTTP status codes

func NewNotFoundError(code, message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, Code: code, err: errors.New(message)}
}

func NewBadRequestError(code, message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, Code: code, err: errors.New(message)}
}

func NewUnauthorizedError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, err: errors.New(message)}
}

func NewConflictError(code, message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusConflict, Code: code, err: errors.New(message)}
}

func NewInternalError(code, message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, Code: code, err: errors.New(message)}
}

func NewValidationError(code, field, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Code:       code,
		err:        errors.New(message),
		Field:      field,
	}
}

func NewRateLimitError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusTooManyRequests, Code: CodeRateLimited, err: errors.New(message)}
}

func IsBadRequest(err error) bool {
	var apiErr *ApiErr
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

func IsNotFound(err error) bool {
	var apiErr *ApiErr
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func IsConflict(err error) bool {
	var apiErr *ApiErr
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// CodeOf extracts the envelope code from err, defaulting to
// INTERNAL_SERVER_ERROR for anything that is not an ApiErr.
func CodeOf(err error) string {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		return apiErr.Code
	}
	return CodeInternal
}
