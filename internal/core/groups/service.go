package groups

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Slugs are lowercase alphanumeric with single hyphen separators.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type groupService struct {
	repo Repository
}

// NewGroupService creates a new group service
func NewGroupService(repo Repository) Service {
	return &groupService{repo: repo}
}

// CreateGroup validates and persists a new group
func (s *groupService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(strings.ToLower(req.Slug))
	req.Description = strings.TrimSpace(req.Description)

	if req.Title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	if req.Slug == "" {
		return nil, NewValidationError("slug", "slug is required")
	}
	if !slugRegex.MatchString(req.Slug) {
		return nil, NewValidationError("slug", "slug may contain only lowercase letters, digits and hyphens")
	}

	group := &Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}

	// Repository surfaces ErrSlugTaken on duplicate slugs
	return s.repo.Create(ctx, group)
}

// GetBySlug resolves a group by its URL slug
func (s *groupService) GetBySlug(ctx context.Context, slug string) (*Group, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, ErrGroupNotFound
	}

	group, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve group %q: %w", slug, err)
	}
	return group, nil
}

// List returns all groups for the post form's group picker
func (s *groupService) List(ctx context.Context) ([]*Group, error) {
	return s.repo.List(ctx)
}
