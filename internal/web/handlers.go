package web

import (
	"log"
	"net/http"

	"Quill/internal/api/middleware"
	"Quill/internal/core/feeds"
	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
)

// Handlers provides the HTTP handlers for the Quill web interface.
type Handlers struct {
	templates    *Templates
	feedService  feeds.Service
	postService  posts.Service
	groupService groups.Service
	userService  users.Service
	auth         *middleware.SessionAuth
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(
	templates *Templates,
	feedService feeds.Service,
	postService posts.Service,
	groupService groups.Service,
	userService users.Service,
	auth *middleware.SessionAuth,
) *Handlers {
	return &Handlers{
		templates:    templates,
		feedService:  feedService,
		postService:  postService,
		groupService: groupService,
		userService:  userService,
		auth:         auth,
	}
}

// basePage carries the fields every template needs.
type basePage struct {
	Title       string
	CurrentUser *users.User
}

func (h *Handlers) base(r *http.Request, title string) basePage {
	return basePage{
		Title:       title,
		CurrentUser: middleware.CurrentUser(r),
	}
}

// AboutAuthorHandler renders the static author page.
// GET /about/author/
func (h *Handlers) AboutAuthorHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "about_author.html", h.base(r, "About the author"))
}

// AboutTechHandler renders the static technology page.
// GET /about/tech/
func (h *Handlers) AboutTechHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "about_tech.html", h.base(r, "Technologies"))
}

// render executes a template and maps rendering failures to a 500.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if err := h.templates.Render(w, name, data); err != nil {
		log.Printf("Failed to render %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// notFound renders the 404 page.
func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := h.templates.Render(w, "not_found.html", h.base(r, "Page not found")); err != nil {
		log.Printf("Failed to render not_found: %v", err)
	}
}

// serverError logs the error and renders a generic 500 without leaking
// internals to the client.
func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("Unexpected error serving %s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
