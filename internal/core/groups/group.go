package groups

// Group is a named category that posts can be filed under.
// The slug is the unique, URL-safe identifier used in feed paths.
type Group struct {
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
	ID          int64  `json:"id" db:"id"`
}

// CreateGroupRequest represents input for creating a new group
type CreateGroupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
