package errs

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

var (
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// NewDatabaseError translates a storage-level failure into a domain error.
// Unique-constraint violations become 409/DUPLICATE_ENTRY so raw storage
// errors never leak to the client; gorm's TranslateError mode is the source
// of truth for constraint violations, the pre-insert existence checks in
// the handlers are an optimization only.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	if cause != nil {
		switch {
		case errors.Is(cause, gorm.ErrDuplicatedKey):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				Code:       CodeDuplicateEntry,
				err:        fmt.Errorf("%s already exists", entity),
				Cause:      cause,
			}
		case errors.Is(cause, gorm.ErrRecordNotFound):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				Code:       CodeBlogNotFound,
				err:        fmt.Errorf("%s not found", entity),
				Cause:      cause,
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternal,
		err:        fmt.Errorf("failed to %s %s", operation, entity),
		Cause:      cause,
	}
}
