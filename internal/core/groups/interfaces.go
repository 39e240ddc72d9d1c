package groups

import "context"

// Repository defines the data access interface for groups
type Repository interface {
	// Create inserts a new group and returns it with the assigned id
	Create(ctx context.Context, group *Group) (*Group, error)

	// GetBySlug retrieves a group by its URL slug
	GetBySlug(ctx context.Context, slug string) (*Group, error)

	// GetByID retrieves a group by its id
	GetByID(ctx context.Context, id int64) (*Group, error)

	// Exists reports whether a group with the given id exists
	Exists(ctx context.Context, id int64) (bool, error)

	// List returns all groups ordered by title, for the post form's group picker
	List(ctx context.Context) ([]*Group, error)
}

// Service defines the business logic interface for groups
type Service interface {
	CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	List(ctx context.Context) ([]*Group, error)
}
