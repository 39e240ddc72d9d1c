package posts

import "context"

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post. The database assigns id and pub_date;
	// both are written back onto the passed post.
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by id
	GetByID(ctx context.Context, id int64) (*Post, error)

	// GetViewByID retrieves a post hydrated with author/group columns
	GetViewByID(ctx context.Context, id int64) (*PostView, error)

	// Update persists new text and group assignment for an existing post.
	// Author and pub_date are never touched.
	Update(ctx context.Context, id int64, text string, groupID *int64) error

	// Count* and List* back the feeds. Listings are ordered newest first
	// (pub_date DESC, id DESC) and windowed by limit/offset.
	CountAll(ctx context.Context) (int, error)
	CountByGroup(ctx context.Context, groupID int64) (int, error)
	CountByAuthor(ctx context.Context, authorID int64) (int, error)
	ListAll(ctx context.Context, limit, offset int) ([]*PostView, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*PostView, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*PostView, error)
}

// GroupChecker is the slice of the groups repository the post service
// needs: existence checks for the optional group reference.
type GroupChecker interface {
	Exists(ctx context.Context, groupID int64) (bool, error)
}

// Service defines the business logic interface for post mutation
type Service interface {
	// Create validates and persists a new post authored by the caller
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)

	// Edit updates text/group of an existing post, enforcing authorship
	Edit(ctx context.Context, req EditPostRequest) (*Post, error)

	// Get retrieves a hydrated post for the detail page
	Get(ctx context.Context, id int64) (*PostView, error)
}
