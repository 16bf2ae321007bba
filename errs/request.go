package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrInvalidUpload        = errors.New("invalid upload")
)

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRequiredField,
		Details:    fmt.Sprintf("missing required field: %s", fieldName),
		Field:      fieldName,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("invalid field %s: %s", fieldName, reason),
		Field:      fieldName,
	}
}

// Upload validation failures are 400s so the caller can distinguish them
// from storage I/O problems, which stay 500.
func NewUploadTooLargeError(size, maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidUpload,
		Details:    fmt.Sprintf("file size %d exceeds the maximum of %d bytes", size, maxSize),
		Field:      "image",
	}
}

func NewUnsupportedImageTypeError(detected string, allowed []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidUpload,
		Details:    fmt.Sprintf("unsupported image type %s, allowed types: %v", detected, allowed),
		Field:      "image",
	}
}

func IsInvalidUpload(err error) bool {
	return errors.Is(err, ErrInvalidUpload)
}
