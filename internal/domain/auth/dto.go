package auth

import "github.com/pierreiost/quadracerta/internal/pkg/validator"

// RegisterRequest creates a staff account that waits for approval.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	// Email
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if len(r.Email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters long")
	} else if len(r.Password) > 72 {
		errs.Add("password", "password must not exceed 72 characters")
	}
	if validator.IsEmpty(r.ConfirmPassword) {
		errs.Add("confirm_password", "confirm_password is required")
	} else if r.ConfirmPassword != r.Password {
		errs.Add("confirm_password", "password and confirm_password do not match")
	}

	// Profile
	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	} else if len(r.FirstName) > 100 {
		errs.Add("first_name", "first_name must not exceed 100 characters")
	}
	if len(r.LastName) > 100 {
		errs.Add("last_name", "last_name must not exceed 100 characters")
	}
	if !validator.IsEmpty(r.Phone) && !validator.IsValidPhone(r.Phone) {
		errs.Add("phone", "phone must be a valid phone number with area code")
	}

	return errs.OrNil()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.OrNil()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	}
	return errs.OrNil()
}

// SessionTrackingRequest carries client metadata stored with a refresh token
type SessionTrackingRequest struct {
	IPAddress string
	UserAgent string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
