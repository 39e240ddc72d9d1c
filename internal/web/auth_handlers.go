package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"Quill/internal/core/users"
	"Quill/internal/monitoring"
)

// authFormPage is the template data for the signup and login forms.
type authFormPage struct {
	basePage
	Username string
	Next     string
	Errors   map[string]string
}

// SignupHandler shows the signup form and creates accounts.
// GET/POST /auth/signup/
func (h *Handlers) SignupHandler(w http.ResponseWriter, r *http.Request) {
	page := authFormPage{
		basePage: h.base(r, "Sign up"),
		Errors:   map[string]string{},
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		page.Username = r.PostFormValue("username")
		password := r.PostFormValue("password")

		_, err := h.userService.Signup(r.Context(), users.SignupRequest{
			Username: page.Username,
			Password: password,
		})

		var valErr *users.ValidationError
		switch {
		case err == nil:
			monitoring.SignupsTotal.Inc()
			http.Redirect(w, r, "/auth/login/", http.StatusFound)
			return
		case errors.Is(err, users.ErrUsernameTaken):
			page.Errors["username"] = "This username is already taken."
		case errors.As(err, &valErr):
			page.Errors[valErr.Field] = valErr.Message
		default:
			h.serverError(w, r, err)
			return
		}
	}

	h.render(w, r, "signup.html", page)
}

// LoginHandler shows the login form and opens sessions. A next query
// parameter (set by RequireAuth) sends the user back where they started.
// GET/POST /auth/login/
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	page := authFormPage{
		basePage: h.base(r, "Log in"),
		Next:     safeReturnPath(r.URL.Query().Get("next")),
		Errors:   map[string]string{},
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		page.Username = r.PostFormValue("username")
		page.Next = safeReturnPath(r.PostFormValue("next"))

		user, err := h.userService.Authenticate(r.Context(), users.LoginRequest{
			Username: page.Username,
			Password: r.PostFormValue("password"),
		})
		switch {
		case err == nil:
			if err := h.auth.Login(w, r, user); err != nil {
				h.serverError(w, r, err)
				return
			}
			target := page.Next
			if target == "" {
				target = "/"
			}
			http.Redirect(w, r, target, http.StatusFound)
			return
		case errors.Is(err, users.ErrInvalidCredentials):
			page.Errors["form"] = "Invalid username or password."
		default:
			h.serverError(w, r, err)
			return
		}
	}

	h.render(w, r, "login.html", page)
}

// LogoutHandler closes the session.
// GET /auth/logout/
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// safeReturnPath keeps the post-login redirect on this site. Only local
// absolute paths survive; anything with a scheme or host is dropped.
func safeReturnPath(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	if u, err := url.Parse(next); err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}
