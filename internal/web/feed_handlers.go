package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Quill/internal/core/feeds"
	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
)

// feedPage is the template data for the three listing pages.
type feedPage struct {
	basePage
	Feed *feeds.Feed
}

// postDetailPage is the template data for a single post.
type postDetailPage struct {
	basePage
	Post *posts.PostView
	// CanEdit is true when the viewer is the author
	CanEdit bool
}

// IndexHandler renders the paginated global feed.
// GET /
func (h *Handlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.notFound(w, r)
		return
	}

	feed, err := h.feedService.Home(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "index.html", feedPage{
		basePage: h.base(r, "Latest posts"),
		Feed:     feed,
	})
}

// GroupFeedHandler renders the paginated feed of one group.
// GET /group/{slug}/
func (h *Handlers) GroupFeedHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	feed, err := h.feedService.Group(r.Context(), slug, r.URL.Query().Get("page"))
	if err != nil {
		if groups.IsNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "group_list.html", feedPage{
		basePage: h.base(r, feed.Group.Title),
		Feed:     feed,
	})
}

// ProfileHandler renders the paginated feed of one author.
// GET /profile/{username}/
func (h *Handlers) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	feed, err := h.feedService.Profile(r.Context(), username, r.URL.Query().Get("page"))
	if err != nil {
		if users.IsNotFound(err) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "profile.html", feedPage{
		basePage: h.base(r, "Posts by "+feed.Profile.Username),
		Feed:     feed,
	})
}

// PostDetailHandler renders a single post.
// GET /posts/{id}/
func (h *Handlers) PostDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	viewer := h.base(r, "Post by "+post.AuthorUsername)
	h.render(w, r, "post_detail.html", postDetailPage{
		basePage: viewer,
		Post:     post,
		CanEdit:  viewer.CurrentUser != nil && viewer.CurrentUser.ID == post.AuthorID,
	})
}
