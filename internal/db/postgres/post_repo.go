package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"Quill/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Feed queries share one shape: hydrate author/group, order newest first
// with id as the stable tiebreaker, window by limit/offset.
const postViewColumns = `
	p.id, p.text, p.pub_date,
	p.author_id, u.username,
	p.group_id, g.title, g.slug
`

const postViewJoins = `
	FROM posts p
	INNER JOIN users u ON p.author_id = u.id
	LEFT JOIN groups g ON p.group_id = g.id
`

const postViewOrder = `ORDER BY p.pub_date DESC, p.id DESC`

// Create inserts a new post into the posts table.
// pub_date is assigned by the database so ordering follows insertion.
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (text, author_id, group_id)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date
	`

	var groupID sql.NullInt64
	if post.GroupID != nil {
		groupID.Int64 = *post.GroupID
		groupID.Valid = true
	}

	err := r.db.QueryRowContext(ctx, query, post.Text, post.AuthorID, groupID).
		Scan(&post.ID, &post.PubDate)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by id
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := `
		SELECT id, text, pub_date, author_id, group_id
		FROM posts
		WHERE id = $1
	`

	var post posts.Post
	var groupID sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Text, &post.PubDate, &post.AuthorID, &groupID)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}

	if groupID.Valid {
		post.GroupID = &groupID.Int64
	}

	return &post, nil
}

// GetViewByID retrieves a post hydrated with author and group columns
func (r *postgresPostRepo) GetViewByID(ctx context.Context, id int64) (*posts.PostView, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.id = $1`, postViewColumns, postViewJoins)

	row := r.db.QueryRowContext(ctx, query, id)
	view, err := scanPostView(row)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post view %d: %w", id, err)
	}

	return view, nil
}

// Update persists new text and group assignment for an existing post.
// author_id and pub_date are deliberately absent from the statement.
func (r *postgresPostRepo) Update(ctx context.Context, id int64, text string, groupID *int64) error {
	query := `UPDATE posts SET text = $1, group_id = $2 WHERE id = $3`

	var gid sql.NullInt64
	if groupID != nil {
		gid.Int64 = *groupID
		gid.Valid = true
	}

	result, err := r.db.ExecContext(ctx, query, text, gid, id)
	if err != nil {
		return fmt.Errorf("failed to update post %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result for post %d: %w", id, err)
	}
	if affected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// CountAll returns the total number of posts
func (r *postgresPostRepo) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts`)
}

// CountByGroup returns the number of posts filed under a group
func (r *postgresPostRepo) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID)
}

// CountByAuthor returns the number of posts written by an author
func (r *postgresPostRepo) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
}

// ListAll returns one window of the global feed
func (r *postgresPostRepo) ListAll(ctx context.Context, limit, offset int) ([]*posts.PostView, error) {
	query := fmt.Sprintf(`SELECT %s %s %s LIMIT $1 OFFSET $2`,
		postViewColumns, postViewJoins, postViewOrder)
	return r.list(ctx, query, limit, offset)
}

// ListByGroup returns one window of a group's feed
func (r *postgresPostRepo) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*posts.PostView, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.group_id = $1 %s LIMIT $2 OFFSET $3`,
		postViewColumns, postViewJoins, postViewOrder)
	return r.list(ctx, query, groupID, limit, offset)
}

// ListByAuthor returns one window of an author's feed
func (r *postgresPostRepo) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*posts.PostView, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.author_id = $1 %s LIMIT $2 OFFSET $3`,
		postViewColumns, postViewJoins, postViewOrder)
	return r.list(ctx, query, authorID, limit, offset)
}

func (r *postgresPostRepo) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return total, nil
}

func (r *postgresPostRepo) list(ctx context.Context, query string, args ...interface{}) ([]*posts.PostView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("WARN: failed to close rows: %v", err)
		}
	}()

	var views []*posts.PostView
	for rows.Next() {
		view, err := scanPostView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return views, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPostView(s scanner) (*posts.PostView, error) {
	var (
		view       posts.PostView
		groupID    sql.NullInt64
		groupTitle sql.NullString
		groupSlug  sql.NullString
	)

	err := s.Scan(
		&view.ID, &view.Text, &view.PubDate,
		&view.AuthorID, &view.AuthorUsername,
		&groupID, &groupTitle, &groupSlug,
	)
	if err != nil {
		return nil, err
	}

	if groupID.Valid {
		view.GroupID = &groupID.Int64
	}
	if groupTitle.Valid {
		view.GroupTitle = &groupTitle.String
	}
	if groupSlug.Valid {
		view.GroupSlug = &groupSlug.String
	}

	return &view, nil
}
