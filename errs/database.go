package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// NewDatabaseError translates a storage failure into an ApiErr. Constraint
// violations become specific 4xx domain errors; anything else stays a 500
// so internals never leak to the client.
//
// Requires gorm.Config{TranslateError: true} so driver errors surface as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("failed to %s %s", operation, entity)

	switch {
	case errors.Is(cause, gorm.ErrDuplicatedKey):
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrForeignKeyViolated):
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        fmt.Errorf("%s is %w", entity, ErrInUse),
			Details:    fmt.Sprintf("the %s is still referenced by one or more projects; remove it from all projects first", entity),
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Details:    details,
			Cause:      cause,
		}
	case cause != nil && strings.Contains(cause.Error(), "connection"):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "unable to connect to database",
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}
