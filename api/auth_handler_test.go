package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aesthetic-webworks/agency-site-backend/auth"
)

func TestSignupIssuesUsableToken(t *testing.T) {
	env := newTestEnv(t)

	token := env.signup(t, "admin", "s3cret")

	rec := env.do(t, http.MethodGet, "/api/auth/me", token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	identity := decodeJSON[auth.Identity](t, rec)
	assert.Equal(t, "admin", identity.Username)
	assert.NotZero(t, identity.ID)
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "admin", "s3cret")

	rec := env.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "admin",
		"password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")
}

func TestSignupRequiresUsernameAndPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"password": "s3cret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSigninCollapsesCredentialFailures(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "admin", "s3cret")

	wrongPassword := env.doJSON(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	unknownUser := env.doJSON(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "nobody",
		"password": "s3cret",
	})

	// Neither response may reveal whether the username or password was wrong.
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestSigninReturnsTokenForValidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "admin", "s3cret")

	rec := env.doJSON(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "admin",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeJSON[map[string]string](t, rec)
	assert.NotEmpty(t, resp["token"])
}

func TestAuthGateStatusCodes(t *testing.T) {
	env := newTestEnv(t)

	missing := env.do(t, http.MethodGet, "/api/auth/me", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, missing.Code)

	malformed := env.do(t, http.MethodGet, "/api/auth/me", "not-a-jwt", "", nil)
	assert.Equal(t, http.StatusForbidden, malformed.Code)

	forged, err := auth.NewTokenManager("other-secret", 0).CreateToken(1, "admin")
	require.NoError(t, err)
	badSignature := env.do(t, http.MethodGet, "/api/auth/me", forged, "", nil)
	assert.Equal(t, http.StatusForbidden, badSignature.Code)
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/categories", "", map[string]string{"title": "Web Design"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/projects/1", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
