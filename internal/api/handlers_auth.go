package api

import (
	"errors"
	"net/http"

	"github.com/asfandyar/optico-store/internal/database"
	"github.com/asfandyar/optico-store/internal/models"
	"github.com/asfandyar/optico-store/internal/schema"
	"golang.org/x/crypto/bcrypt"
)

// LoginResponse carries the authenticated user and the bearer token the
// client must attach to subsequent requests.
type LoginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var in schema.LoginInput
	if err := decodeJSON(r.Body, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Message)
		return
	}

	// The back-office login form accepts the literal name "admin" as a
	// shorthand for the seeded admin account.
	email := in.Email
	if email == "admin" {
		email = a.cfg.Seed.AdminEmail
	}

	user, err := a.storage.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			// Same response as a wrong password: the caller must not
			// learn whether the email is registered.
			respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondStoreError(w, r, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := a.issueToken(user)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{User: *user, Token: token})
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var in schema.UserInput
	if err := decodeJSON(r.Body, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Message)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	// Self-registration never grants admin; the seeded admin account is
	// the only way to obtain the role.
	user, err := a.storage.CreateUser(r.Context(), models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Role:     models.RoleUser,
	})
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}
