package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"Quill/internal/core/groups"
)

type postgresGroupRepo struct {
	db *sql.DB
}

// NewGroupRepository creates a new PostgreSQL group repository
func NewGroupRepository(db *sql.DB) groups.Repository {
	return &postgresGroupRepo{db: db}
}

// Create inserts a new group into the groups table
func (r *postgresGroupRepo) Create(ctx context.Context, group *groups.Group) (*groups.Group, error) {
	query := `
		INSERT INTO groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, group.Title, group.Slug, group.Description).
		Scan(&group.ID)
	if err != nil {
		if isUniqueViolation(err, "groups_slug_key") {
			return nil, groups.ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetBySlug retrieves a group by its URL slug
func (r *postgresGroupRepo) GetBySlug(ctx context.Context, slug string) (*groups.Group, error) {
	group := &groups.Group{}
	query := `SELECT id, title, slug, description FROM groups WHERE slug = $1`

	err := r.db.QueryRowContext(ctx, query, slug).
		Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err == sql.ErrNoRows {
		return nil, groups.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by slug: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by id
func (r *postgresGroupRepo) GetByID(ctx context.Context, id int64) (*groups.Group, error) {
	group := &groups.Group{}
	query := `SELECT id, title, slug, description FROM groups WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err == sql.ErrNoRows {
		return nil, groups.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", id, err)
	}

	return group, nil
}

// Exists reports whether a group with the given id exists
func (r *postgresGroupRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1)`

	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check group %d: %w", id, err)
	}

	return exists, nil
}

// List returns all groups ordered by title
func (r *postgresGroupRepo) List(ctx context.Context) ([]*groups.Group, error) {
	query := `SELECT id, title, slug, description FROM groups ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("WARN: failed to close rows: %v", err)
		}
	}()

	var result []*groups.Group
	for rows.Next() {
		group := &groups.Group{}
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		result = append(result, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return result, nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}
