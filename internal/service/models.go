package service

import (
	"time"

	"github.com/brokerz/brokerz-auth/internal/domain"
)

// SignupInput carries the raw signup request fields.
type SignupInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Portal          string `json:"portal"`
}

// LoginInput carries the raw login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Portal   string `json:"portal"`
}

// UserViewModel represents the user summary returned alongside tokens.
type UserViewModel struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Portal    string `json:"portal"`
}

// Profile is the full current-user view.
type Profile struct {
	UserViewModel
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse bundles a bearer token with the user summary.
type AuthResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Token   string        `json:"token"`
	User    UserViewModel `json:"user"`
}

func viewModel(user domain.User) UserViewModel {
	return UserViewModel{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Portal:    user.Portal.String(),
	}
}
