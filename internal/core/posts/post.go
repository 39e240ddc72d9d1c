package posts

import (
	"time"
)

// Post is a single blog entry. Author and publication date are fixed at
// creation; only the text and the group assignment change on edit.
type Post struct {
	PubDate   time.Time `json:"pubDate" db:"pub_date"`
	Text      string    `json:"text" db:"text"`
	GroupID   *int64    `json:"groupId,omitempty" db:"group_id"`
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
}

// PostView is a post hydrated with the author and group columns the feed
// and detail templates render. Group fields are nil for ungrouped posts.
type PostView struct {
	PubDate        time.Time `json:"pubDate"`
	Text           string    `json:"text"`
	AuthorUsername string    `json:"authorUsername"`
	GroupTitle     *string   `json:"groupTitle,omitempty"`
	GroupSlug      *string   `json:"groupSlug,omitempty"`
	GroupID        *int64    `json:"groupId,omitempty"`
	ID             int64     `json:"id"`
	AuthorID       int64     `json:"authorId"`
}

// CreatePostRequest represents input for creating a new post.
// AuthorID comes from the authenticated identity, never from the form.
type CreatePostRequest struct {
	Text     string `json:"text"`
	GroupID  *int64 `json:"groupId,omitempty"`
	AuthorID int64  `json:"-"`
}

// EditPostRequest represents input for editing an existing post.
// CallerID is the authenticated identity attempting the edit.
type EditPostRequest struct {
	Text     string `json:"text"`
	GroupID  *int64 `json:"groupId,omitempty"`
	PostID   int64  `json:"-"`
	CallerID int64  `json:"-"`
}
