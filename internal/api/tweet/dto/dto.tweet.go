package tweetdto

import "strings"

// TweetInput is the body of create and update.
type TweetInput struct {
	Content string `json:"content" form:"content" validate:"required,min=1,max=1000,no_xss"`
}

// Trim strips surrounding whitespace.
func (in *TweetInput) Trim() {
	in.Content = strings.TrimSpace(in.Content)
}
