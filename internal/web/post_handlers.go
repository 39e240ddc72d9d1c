package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Quill/internal/api/middleware"
	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/monitoring"
)

// postFormPage is the template data for the create/edit post form.
// Text and GroupID echo the submitted values so a rejected submission
// comes back with the input retained.
type postFormPage struct {
	basePage
	Text    string
	GroupID string
	Groups  []*groups.Group
	Errors  map[string]string
	IsEdit  bool
	PostID  int64
}

// CreatePostHandler shows the post form and handles its submission.
// GET/POST /create/ (behind RequireAuth)
func (h *Handlers) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		// RequireAuth fronts this route; this is a wiring bug, not a user error
		h.serverError(w, r, errors.New("create handler reached without identity"))
		return
	}

	page := postFormPage{
		basePage: h.base(r, "New post"),
		Errors:   map[string]string{},
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		page.Text = r.PostFormValue("text")
		page.GroupID = r.PostFormValue("group")

		groupID, ok := parseGroupChoice(page.GroupID)
		if !ok {
			page.Errors["group"] = "Select a valid group."
		} else {
			_, err := h.postService.Create(r.Context(), posts.CreatePostRequest{
				Text:     page.Text,
				GroupID:  groupID,
				AuthorID: user.ID,
			})
			switch {
			case err == nil:
				monitoring.PostsCreated.Inc()
				http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusFound)
				return
			case !h.collectFormErrors(page.Errors, err):
				h.serverError(w, r, err)
				return
			}
		}
	}

	h.renderPostForm(w, r, page)
}

// EditPostHandler shows the edit form and handles its submission. Only the
// author gets the form; everyone else authenticated is sent back to the
// post's detail page with no error surfaced.
// GET/POST /posts/{id}/edit/ (behind RequireAuth)
func (h *Handlers) EditPostHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		h.serverError(w, r, errors.New("edit handler reached without identity"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return
	}
	detailPath := fmt.Sprintf("/posts/%d/", id)

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}
	if post.AuthorID != user.ID {
		http.Redirect(w, r, detailPath, http.StatusFound)
		return
	}

	page := postFormPage{
		basePage: h.base(r, "Edit post"),
		Errors:   map[string]string{},
		IsEdit:   true,
		PostID:   id,
		Text:     post.Text,
	}
	if post.GroupID != nil {
		page.GroupID = strconv.FormatInt(*post.GroupID, 10)
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		page.Text = r.PostFormValue("text")
		page.GroupID = r.PostFormValue("group")

		groupID, ok := parseGroupChoice(page.GroupID)
		if !ok {
			page.Errors["group"] = "Select a valid group."
		} else {
			_, err := h.postService.Edit(r.Context(), posts.EditPostRequest{
				Text:     page.Text,
				GroupID:  groupID,
				PostID:   id,
				CallerID: user.ID,
			})
			switch {
			case err == nil:
				http.Redirect(w, r, detailPath, http.StatusFound)
				return
			case errors.Is(err, posts.ErrNotAuthor):
				// Authorship changed between the check above and the
				// submit; same silent redirect as the pre-check.
				http.Redirect(w, r, detailPath, http.StatusFound)
				return
			case !h.collectFormErrors(page.Errors, err):
				h.serverError(w, r, err)
				return
			}
		}
	}

	h.renderPostForm(w, r, page)
}

// collectFormErrors maps recoverable service errors onto form fields.
// Returns false for errors that should surface as a 500 instead.
func (h *Handlers) collectFormErrors(formErrors map[string]string, err error) bool {
	var valErr *posts.ValidationError
	switch {
	case errors.As(err, &valErr):
		formErrors[valErr.Field] = valErr.Message
		return true
	case errors.Is(err, posts.ErrGroupNotFound):
		formErrors["group"] = "Select a valid group."
		return true
	default:
		return false
	}
}

func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, page postFormPage) {
	allGroups, err := h.groupService.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	page.Groups = allGroups

	h.render(w, r, "create_post.html", page)
}

// parseGroupChoice parses the optional group select value. Empty means no
// group; anything non-numeric is a bad choice.
func parseGroupChoice(raw string) (*int64, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}
