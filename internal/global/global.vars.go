package global

// Collection names
type MongoDB_CollectionName struct {
	Users         string
	Videos        string
	Comments      string
	Tweets        string
	Playlists     string
	Subscriptions string
	Likes         string
}

// Validate is shared by every handler; custom tags are registered in NewValidator.
var Validate = NewValidator()

var MongoDB_ColNames = MongoDB_CollectionName{
	Users:         "users",
	Videos:        "videos",
	Comments:      "comments",
	Tweets:        "tweets",
	Playlists:     "playlists",
	Subscriptions: "subscriptions",
	Likes:         "likes",
}
