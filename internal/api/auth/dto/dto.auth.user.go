package authdto

import "strings"

// RegisterInput is the text part of the multipart registration form.
type RegisterInput struct {
	FullName string `json:"fullName" form:"fullName" validate:"required,fullname"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Username string `json:"username" form:"username" validate:"required,username"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=72"`
}

// LoginInput accepts either username or email.
type LoginInput struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RefreshInput carries the refresh token when it is not sent as a cookie.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

// ChangePasswordInput changes the password of the current user.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required,min=6,max=72"`
}

// UpdateAccountInput updates the profile text fields; both are required.
type UpdateAccountInput struct {
	FullName string `json:"fullName" form:"fullName" validate:"required,fullname"`
	Email    string `json:"email" form:"email" validate:"required,email"`
}

// Normalize lowercases the unique keys so lookups are case-insensitive.
func (in *RegisterInput) Normalize() {
	in.Username = normalizeKey(in.Username)
	in.Email = normalizeKey(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
}

// Normalize lowercases the identifiers.
func (in *LoginInput) Normalize() {
	in.Username = normalizeKey(in.Username)
	in.Email = normalizeKey(in.Email)
}

// Normalize lowercases the email.
func (in *UpdateAccountInput) Normalize() {
	in.Email = normalizeKey(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
