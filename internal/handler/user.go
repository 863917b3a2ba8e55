package handler

import (
	"net/http"

	"github.com/recipebox-dev/recipebox/internal/api"
	"github.com/recipebox-dev/recipebox/internal/domain"
	mw "github.com/recipebox-dev/recipebox/internal/middleware"
	"github.com/recipebox-dev/recipebox/internal/utils"
)

// CreateUser registers a new account. The response never carries the
// password in any form.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body api.CreateUserRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.auth.Register(domain.Credentials{Email: body.Email, Password: body.Password}, body.Name)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.UserResponse{Id: user.Id, Email: user.Email, Name: user.Name})
}

// CreateToken exchanges credentials for the account's bearer token.
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var body api.TokenRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.Login(domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.TokenResponse{Token: token})
}

// Me returns the authenticated account's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, api.ProfileResponse{Email: user.Email, Name: user.Name})
}

// UpdateMe merges supplied profile fields into the authenticated
// account. Omitted fields stay untouched.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.UpdateProfileRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	updated, err := h.auth.UpdateProfile(*user, domain.ProfileUpdate{Name: body.Name, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.ProfileResponse{Email: updated.Email, Name: updated.Name})
}
