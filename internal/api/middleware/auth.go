package middleware

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"

	"Quill/internal/core/users"
)

// Context keys for storing user information
type contextKey string

const userKey contextKey = "current_user"

// SessionName is the cookie holding the login session
const SessionName = "quill_session"

// sessionUserID is the session value carrying the account id
const sessionUserID = "user_id"

// SessionAuth loads the authenticated identity from the session cookie and
// threads it through the request context as an explicit value. Handlers
// read it back with CurrentUser; nothing downstream touches the cookie.
type SessionAuth struct {
	store sessions.Store
	users users.Service
}

// NewSessionAuth creates a new session auth middleware
func NewSessionAuth(store sessions.Store, userService users.Service) *SessionAuth {
	return &SessionAuth{
		store: store,
		users: userService,
	}
}

// LoadUser resolves the session cookie to a *users.User and injects it
// into the request context. Anonymous and stale sessions pass through
// without a user; no request fails here.
func (m *SessionAuth) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			// Tampered or outdated cookie: treat as anonymous
			next.ServeHTTP(w, r)
			return
		}

		id, ok := session.Values[sessionUserID].(int64)
		if !ok || id <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetByID(r.Context(), id)
		if err != nil {
			if !users.IsNotFound(err) {
				log.Printf("WARN: failed to resolve session user %d: %v", id, err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth ensures the request carries an authenticated identity.
// Anonymous requests are redirected to the login page with the original
// path in the next parameter so login can return them where they started.
func (m *SessionAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r) == nil {
			target := "/auth/login/?next=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Login writes the user's id into a fresh session cookie
func (m *SessionAuth) Login(w http.ResponseWriter, r *http.Request, user *users.User) error {
	session, _ := m.store.Get(r, SessionName)
	session.Values[sessionUserID] = user.ID
	return session.Save(r, w)
}

// Logout clears the session cookie
func (m *SessionAuth) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, SessionName)
	delete(session.Values, sessionUserID)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// CurrentUser extracts the authenticated user from the request context.
// Returns nil for anonymous requests.
func CurrentUser(r *http.Request) *users.User {
	user, _ := r.Context().Value(userKey).(*users.User)
	return user
}

// SetTestUser injects a user into the context for testing purposes.
// This function should ONLY be used in tests to mock authenticated users.
func SetTestUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
