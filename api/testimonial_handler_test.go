package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestimonial(t *testing.T, env *testEnv, token string, fields map[string]string, imageBytes []byte) testimonialResponse {
	t.Helper()

	fileField := ""
	if imageBytes != nil {
		fileField = "authorImage"
	}
	body, contentType := multipartBody(t, fields, fileField, "portrait.jpg", imageBytes)
	rec := env.do(t, http.MethodPost, "/api/testimonials", token, contentType, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeJSON[testimonialResponse](t, rec)
}

func TestCreateTestimonialShapesAuthor(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin", "s3cret")

	testimonial := createTestimonial(t, env, token, map[string]string{
		"authorName":    "Steven Glibbery",
		"authorCompany": "TGA Mobility",
		"content":       "The end product is brilliant.",
	}, jpegBytes())

	assert.Equal(t, "1", testimonial.ID)
	assert.Equal(t, "Steven Glibbery", testimonial.Author.Name)
	require.NotNil(t, testimonial.Author.Company)
	assert.Equal(t, "TGA Mobility", *testimonial.Author.Company)
	require.NotNil(t, testimonial.Author.Image)
	assert.True(t, env.fileExists(t, *testimonial.Author.Image))
	assert.Equal(t, "The end product is brilliant.", testimonial.Content)
}

func TestCreateTestimonialWithoutOptionalFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin", "s3cret")

	testimonial := createTestimonial(t, env, token, map[string]string{
		"authorName": "Nathan Smith",
		"content":    "Absolutely first class.",
	}, nil)

	assert.Nil(t, testimonial.Author.Company)
	assert.Nil(t, testimonial.Author.Image)
}

func TestCreateTestimonialRequiresNameAndContent(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin", "s3cret")

	body, contentType := multipartBody(t, map[string]string{"authorName": "Nathan Smith"}, "", "", nil)
	rec := env.do(t, http.MethodPost, "/api/testimonials", token, contentType, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, contentType = multipartBody(t, map[string]string{"content": "Great."}, "", "", nil)
	rec = env.do(t, http.MethodPost, "/api/testimonials", token, contentType, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTestimonialReplacesImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin", "s3cret")
	testimonial := createTestimonial(t, env, token, map[string]string{
		"authorName": "Steven Glibbery",
		"content":    "Great work.",
	}, jpegBytes())
	oldImage := *testimonial.Author.Image

	body, contentType := multipartBody(t, map[string]string{
		"authorName": "Steven Glibbery",
		"content":    "Great work.",
	}, "authorImage", "new.png", pngBytes())
	rec := env.do(t, http.MethodPut, "/api/testimonials/"+testimonial.ID, token, contentType, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeJSON[testimonialResponse](t, rec)
	require.NotNil(t, updated.Author.Image)
	assert.NotEqual(t, oldImage, *updated.Author.Image)
	assert.True(t, env.fileExists(t, *updated.Author.Image))
	assert.False(t, env.fileExists(t, oldImage))
}

func TestUpdateTestimonialWithoutImageKeepsExisting(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin", "s3cret")
	testimonial := createTestimonial(t, env, token, map[string]string{
		"authorName": "Steven Glibbery",
		"content":    "Great work.",
	}, jpegBytes())

	body, contentType := multipartBody(t, map[string]string{
		"authorName": "Steven Glibbery",
		"content":    "Even better on reflection.",
	}, "", "", nil)
	rec := env.do(t, http.MethodPut, "/api/testimonials/"+testimonial.ID, token, contentType, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeJSON[testimonialResponse](t, rec)
	require.NotNil(t, updated.Author.Image)
	assert.Equal(t, *testimonial.Author.Image, *updated.Author.Image)
	assert.Equal(t, "Even better on reflection.", updated.Content)
}

func TestDeleteTestimonialRemovesImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin", "s3cret")
	testimonial := createTestimonial(t, env, token, map[string]string{
		"authorName": "Steven Glibbery",
		"content":    "Great work.",
	}, jpegBytes())
	imagePath := *testimonial.Author.Image

	rec := env.do(t, http.MethodDelete, "/api/testimonials/"+testimonial.ID, token, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, env.fileExists(t, imagePath))

	list := env.do(t, http.MethodGet, "/api/testimonials", "", "", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Empty(t, decodeJSON[[]testimonialResponse](t, list))
}

func TestTestimonialRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin", "s3cret")

	created := createTestimonial(t, env, token, map[string]string{
		"authorName": "Nathan Smith",
		"content":    "Absolutely first class.",
	}, nil)

	rec := env.do(t, http.MethodDelete, "/api/testimonials/"+created.ID, token, "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	body, contentType := multipartBody(t, map[string]string{
		"authorName": "Nathan Smith",
		"content":    "Gone.",
	}, "", "", nil)
	rec = env.do(t, http.MethodPut, "/api/testimonials/"+created.ID, token, contentType, body)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/testimonials/"+created.ID, token, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTestimonialClearsCompanyWhenOmitted(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin", "s3cret")
	testimonial := createTestimonial(t, env, token, map[string]string{
		"authorName":    "Steven Glibbery",
		"authorCompany": "TGA Mobility",
		"content":       "Great work.",
	}, nil)

	body, contentType := multipartBody(t, map[string]string{
		"authorName": "Steven Glibbery",
		"content":    "Great work.",
	}, "", "", nil)
	rec := env.do(t, http.MethodPut, fmt.Sprintf("/api/testimonials/%s", testimonial.ID), token, contentType, body)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeJSON[testimonialResponse](t, rec)
	assert.Nil(t, updated.Author.Company)
}
