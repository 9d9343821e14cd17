package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/smartmeet/internal/common"
	"github.com/dmitrijs2005/smartmeet/internal/server/users"
)

const maxBodyBytes = 1 << 20

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeValidation(w, invalidField("body", "username", "Invalid form body"))
		return
	}

	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	var errs []fieldError
	if username == "" {
		errs = append(errs, missingField("body", "username"))
	}
	if password == "" {
		errs = append(errs, missingField("body", "password"))
	}
	if len(errs) > 0 {
		writeValidation(w, errs...)
		return
	}

	token, user, err := h.users.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		unauthorized(w, "Incorrect email or password")
		return
	case errors.Is(err, users.ErrInactiveUser):
		writeDetail(w, http.StatusBadRequest, "Inactive user")
		return
	case err != nil:
		h.internalError(w, r, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   common.TokenTypeBearer,
		User:        toUserResponse(user),
	})
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeValidation(w, invalidField("body", "", "JSON decode error"))
		return
	}

	var errs []fieldError
	if req.Email == "" {
		errs = append(errs, missingField("body", "email"))
	}
	if req.Password == "" {
		errs = append(errs, missingField("body", "password"))
	}
	if len(errs) > 0 {
		writeValidation(w, errs...)
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.FullName, req.Password)
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	case errors.Is(err, users.ErrInvalidEmail):
		writeValidation(w, invalidField("body", "email", "value is not a valid email address"))
		return
	case errors.Is(err, users.ErrWeakPassword):
		writeValidation(w, invalidField("body", "password", err.Error()))
		return
	case err != nil:
		h.internalError(w, r, "register", err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "id", user.ID)
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(userFromContext(r.Context())))
}
