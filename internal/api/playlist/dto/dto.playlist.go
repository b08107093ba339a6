package playlistdto

import "strings"

// CreatePlaylistInput is the body of POST /playlist.
type CreatePlaylistInput struct {
	Name        string `json:"name" form:"name" validate:"required,min=1,max=100,no_xss"`
	Description string `json:"description" form:"description" validate:"required,min=1,max=500,no_xss"`
}

// UpdatePlaylistInput changes name and/or description.
type UpdatePlaylistInput struct {
	Name        string `json:"name" form:"name" validate:"omitempty,max=100,no_xss"`
	Description string `json:"description" form:"description" validate:"omitempty,max=500,no_xss"`
}

// Trim strips surrounding whitespace.
func (in *CreatePlaylistInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

// Trim strips surrounding whitespace.
func (in *UpdatePlaylistInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}
