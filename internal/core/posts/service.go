package posts

import (
	"context"
	"fmt"
	"strings"
)

type postService struct {
	repo   Repository
	groups GroupChecker
}

// NewPostService creates a new post service
func NewPostService(repo Repository, groups GroupChecker) Service {
	return &postService{
		repo:   repo,
		groups: groups,
	}
}

// Create validates and persists a new post.
// Flow: require identity -> validate text -> verify group -> insert.
// The database assigns pub_date, so concurrent creates order by insertion.
func (s *postService) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if req.AuthorID <= 0 {
		return nil, ErrUnauthorized
	}

	text, err := validateText(req.Text)
	if err != nil {
		return nil, err
	}

	if err := s.checkGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	post := &Post{
		Text:     text,
		AuthorID: req.AuthorID,
		GroupID:  req.GroupID,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// Edit updates the text and group of an existing post.
// Only the author may edit; a well-formed edit by anyone else returns
// ErrNotAuthor and leaves the post untouched. Author and pub_date are
// immutable regardless of who calls.
func (s *postService) Edit(ctx context.Context, req EditPostRequest) (*Post, error) {
	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if req.CallerID <= 0 {
		return nil, ErrUnauthorized
	}
	if post.AuthorID != req.CallerID {
		return nil, ErrNotAuthor
	}

	text, err := validateText(req.Text)
	if err != nil {
		return nil, err
	}

	if err := s.checkGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, post.ID, text, req.GroupID); err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", post.ID, err)
	}

	post.Text = text
	post.GroupID = req.GroupID
	return post, nil
}

// Get retrieves a hydrated post for the detail page
func (s *postService) Get(ctx context.Context, id int64) (*PostView, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.GetViewByID(ctx, id)
}

func (s *postService) checkGroup(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		return nil
	}
	ok, err := s.groups.Exists(ctx, *groupID)
	if err != nil {
		return fmt.Errorf("failed to check group %d: %w", *groupID, err)
	}
	if !ok {
		return ErrGroupNotFound
	}
	return nil
}

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", NewValidationError("text", "text is required")
	}
	return text, nil
}
