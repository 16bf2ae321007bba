package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aesthetic-webworks/agency-site-backend/auth"
	"github.com/aesthetic-webworks/agency-site-backend/database"
	"github.com/aesthetic-webworks/agency-site-backend/errs"
	"github.com/aesthetic-webworks/agency-site-backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    *auth.TokenManager
}

func newAuthHandler(userRepo *database.UserRepo, tokens *auth.TokenManager) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    tokens,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// signup registers a new admin account and returns a bearer token.
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("json", err))
			return
		}
		if req.Username == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("hashing password", err))
			return
		}

		user := models.User{Username: req.Username, PasswordHash: hash}
		if err := h.userRepo.Add(&user); err != nil {
			apiErr := errs.NewDatabaseError("create", "user", err)
			if errs.IsAlreadyExists(apiErr) {
				h.responder.WriteError(w, errs.NewBadRequestError("username already exists"))
				return
			}
			h.responder.WriteError(w, apiErr)
			return
		}

		token, err := h.tokens.CreateToken(user.ID, user.Username)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("signing token", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, tokenResponse{Token: token})
	}
}

// signin verifies credentials and returns a bearer token. An unknown
// username and a wrong password collapse into the same response.
func (h authHandler) signin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("json", err))
			return
		}
		if req.Username == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		user, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := h.tokens.CreateToken(user.ID, user.Username)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("signing token", err))
			return
		}

		h.responder.WriteJSON(w, tokenResponse{Token: token})
	}
}

// me returns the identity behind the presented token.
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		user, err := h.userRepo.FindByID(identity.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		h.responder.WriteJSON(w, auth.Identity{ID: user.ID, Username: user.Username})
	}
}
