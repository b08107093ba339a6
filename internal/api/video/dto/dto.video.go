package videodto

import "strings"

// PublishVideoInput is the text part of the publish form.
type PublishVideoInput struct {
	Title       string `json:"title" form:"title" validate:"required,min=5,max=100,no_xss"`
	Description string `json:"description" form:"description" validate:"required,min=10,max=500,no_xss"`
}

// UpdateVideoInput changes any of title, description and (through the upload) thumbnail.
type UpdateVideoInput struct {
	Title       string `json:"title" form:"title" validate:"omitempty,min=5,max=100,no_xss"`
	Description string `json:"description" form:"description" validate:"omitempty,min=10,max=500,no_xss"`
}

// Trim strips surrounding whitespace.
func (in *PublishVideoInput) Trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
}

// Trim strips surrounding whitespace.
func (in *UpdateVideoInput) Trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
}

// ListVideosQuery are the filter and sort parameters of GET /videos; page and limit are
// read separately.
type ListVideosQuery struct {
	Query    string `json:"query" query:"query" validate:"max=100"`
	SortBy   string `json:"sortBy" query:"sortBy" validate:"omitempty,oneof=createdAt views duration"`
	SortType string `json:"sortType" query:"sortType" validate:"omitempty,oneof=asc desc"`
	UserID   string `json:"userId" query:"userId" validate:"omitempty,objectid"`
}
