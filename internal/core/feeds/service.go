// Package feeds produces the three post listings: the global feed, the
// per-group feed and the per-author profile feed. All three share one
// rule, posts newest first, and differ only in the filter. Each listing
// is counted, paged and windowed through the pagination package.
package feeds

import (
	"context"
	"fmt"

	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
	"Quill/internal/pagination"
)

// Service defines the read-only listing interface
type Service interface {
	// Home returns the requested page of the unfiltered global feed
	Home(ctx context.Context, rawPage string) (*Feed, error)

	// Group resolves slug and returns the requested page of its feed.
	// Unknown slugs surface groups.ErrGroupNotFound.
	Group(ctx context.Context, slug, rawPage string) (*Feed, error)

	// Profile resolves username and returns the requested page of that
	// author's feed. Unknown usernames surface users.ErrUserNotFound.
	Profile(ctx context.Context, username, rawPage string) (*Feed, error)
}

type feedService struct {
	posts   posts.Repository
	groups  groups.Service
	users   users.Service
	perPage int
}

// NewFeedService creates a new feed service. perPage <= 0 falls back to
// the package default of pagination.PerPage.
func NewFeedService(postRepo posts.Repository, groupService groups.Service, userService users.Service, perPage int) Service {
	if perPage <= 0 {
		perPage = pagination.PerPage
	}
	return &feedService{
		posts:   postRepo,
		groups:  groupService,
		users:   userService,
		perPage: perPage,
	}
}

// Home returns one page of the global feed
func (s *feedService) Home(ctx context.Context, rawPage string) (*Feed, error) {
	total, err := s.posts.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	page := pagination.New(rawPage, total, s.perPage)
	items, err := s.posts.ListAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &Feed{Posts: items, Page: page}, nil
}

// Group returns one page of a group's feed
func (s *feedService) Group(ctx context.Context, slug, rawPage string) (*Feed, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	total, err := s.posts.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts in group %q: %w", slug, err)
	}

	page := pagination.New(rawPage, total, s.perPage)
	items, err := s.posts.ListByGroup(ctx, group.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list posts in group %q: %w", slug, err)
	}

	return &Feed{Group: group, Posts: items, Page: page}, nil
}

// Profile returns one page of an author's feed
func (s *feedService) Profile(ctx context.Context, username, rawPage string) (*Feed, error) {
	profile, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	total, err := s.posts.CountByAuthor(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts by %q: %w", username, err)
	}

	page := pagination.New(rawPage, total, s.perPage)
	items, err := s.posts.ListByAuthor(ctx, profile.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by %q: %w", username, err)
	}

	return &Feed{Profile: profile, Posts: items, Page: page}, nil
}
