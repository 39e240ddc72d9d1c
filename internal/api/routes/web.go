package routes

import (
	"github.com/go-chi/chi/v5"

	"Quill/internal/api/middleware"
	"Quill/internal/web"
)

// RegisterWebRoutes registers all page routes for the Quill frontend:
// feeds, post detail, post forms, signup/login and the about pages.
// The auth middleware is used both for loading identity (mounted by the
// caller) and for guarding the mutation routes here.
func RegisterWebRoutes(r chi.Router, handlers *web.Handlers, auth *middleware.SessionAuth) {
	// Feeds and post detail are public
	r.Get("/", handlers.IndexHandler)
	r.Get("/group/{slug}/", handlers.GroupFeedHandler)
	r.Get("/profile/{username}/", handlers.ProfileHandler)
	r.Get("/posts/{id}/", handlers.PostDetailHandler)

	// Post mutation requires a logged-in user; anonymous requests are
	// redirected to the login form with a return path
	r.With(auth.RequireAuth).Get("/create/", handlers.CreatePostHandler)
	r.With(auth.RequireAuth).Post("/create/", handlers.CreatePostHandler)
	r.With(auth.RequireAuth).Get("/posts/{id}/edit/", handlers.EditPostHandler)
	r.With(auth.RequireAuth).Post("/posts/{id}/edit/", handlers.EditPostHandler)

	// Account flows
	r.Get("/auth/signup/", handlers.SignupHandler)
	r.Post("/auth/signup/", handlers.SignupHandler)
	r.Get("/auth/login/", handlers.LoginHandler)
	r.Post("/auth/login/", handlers.LoginHandler)
	r.Get("/auth/logout/", handlers.LogoutHandler)

	// Static pages
	r.Get("/about/author/", handlers.AboutAuthorHandler)
	r.Get("/about/tech/", handlers.AboutTechHandler)
}
