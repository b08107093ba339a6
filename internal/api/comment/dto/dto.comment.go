package commentdto

import "strings"

// CommentInput is the body of add and update.
type CommentInput struct {
	Content string `json:"content" form:"content" validate:"required,min=1,max=1000,no_xss"`
}

// Trim strips surrounding whitespace so blank content fails required.
func (in *CommentInput) Trim() {
	in.Content = strings.TrimSpace(in.Content)
}
