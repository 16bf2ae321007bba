package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temp files. Uploads are capped at 1 MiB anyway.
const multipartMemory = 4 << 20

// urlParamID parses a numeric id path parameter.
func urlParamID(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errors.New("missing " + name)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

// formFile returns the uploaded file for a multipart field, or nils when the
// field was absent. Absence is not an error: images are optional everywhere.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return file, header, nil
}

// hasFormField reports whether a multipart value field was supplied at all,
// distinguishing "categories=" (replace with nothing) from no field (keep).
func hasFormField(r *http.Request, field string) bool {
	if r.MultipartForm == nil {
		return false
	}
	_, ok := r.MultipartForm.Value[field]
	return ok
}

// splitCSV splits a comma-separated field into trimmed, non-empty values.
func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
