package feeds

import (
	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
	"Quill/internal/pagination"
)

// Feed is one page of a post listing plus whatever the variant resolved
// along the way: the group for group feeds, the profile for author feeds.
type Feed struct {
	Group   *groups.Group
	Profile *users.User
	Posts   []*posts.PostView
	Page    pagination.Page
}
