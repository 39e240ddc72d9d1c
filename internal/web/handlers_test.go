package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Quill/internal/api/middleware"
	"Quill/internal/api/routes"
	"Quill/internal/core/feeds"
	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
	"Quill/internal/pagination"
	"Quill/internal/web"
)

type stubFeedService struct {
	home    func(rawPage string) (*feeds.Feed, error)
	group   func(slug, rawPage string) (*feeds.Feed, error)
	profile func(username, rawPage string) (*feeds.Feed, error)
}

func (s *stubFeedService) Home(_ context.Context, rawPage string) (*feeds.Feed, error) {
	return s.home(rawPage)
}

func (s *stubFeedService) Group(_ context.Context, slug, rawPage string) (*feeds.Feed, error) {
	return s.group(slug, rawPage)
}

func (s *stubFeedService) Profile(_ context.Context, username, rawPage string) (*feeds.Feed, error) {
	return s.profile(username, rawPage)
}

type stubPostService struct {
	create func(req posts.CreatePostRequest) (*posts.Post, error)
	edit   func(req posts.EditPostRequest) (*posts.Post, error)
	get    func(id int64) (*posts.PostView, error)
}

func (s *stubPostService) Create(_ context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
	return s.create(req)
}

func (s *stubPostService) Edit(_ context.Context, req posts.EditPostRequest) (*posts.Post, error) {
	return s.edit(req)
}

func (s *stubPostService) Get(_ context.Context, id int64) (*posts.PostView, error) {
	return s.get(id)
}

type stubGroupService struct{}

func (s *stubGroupService) CreateGroup(context.Context, groups.CreateGroupRequest) (*groups.Group, error) {
	panic("not used")
}

func (s *stubGroupService) GetBySlug(context.Context, string) (*groups.Group, error) {
	panic("not used")
}

func (s *stubGroupService) List(context.Context) ([]*groups.Group, error) {
	return []*groups.Group{{ID: 1, Title: "Test Group", Slug: "test-slug"}}, nil
}

type stubUserService struct {
	authenticate func(req users.LoginRequest) (*users.User, error)
	signup       func(req users.SignupRequest) (*users.User, error)
}

func (s *stubUserService) Signup(_ context.Context, req users.SignupRequest) (*users.User, error) {
	return s.signup(req)
}

func (s *stubUserService) Authenticate(_ context.Context, req users.LoginRequest) (*users.User, error) {
	return s.authenticate(req)
}

func (s *stubUserService) GetByID(context.Context, int64) (*users.User, error) {
	return nil, users.ErrUserNotFound
}

func (s *stubUserService) GetByUsername(context.Context, string) (*users.User, error) {
	return nil, users.ErrUserNotFound
}

type fixture struct {
	router chi.Router
	feeds  *stubFeedService
	posts  *stubPostService
	users  *stubUserService
}

func emptyFeed() *feeds.Feed {
	return &feeds.Feed{Page: pagination.New("1", 0, 10)}
}

// newFixture builds the full router the way cmd/server wires it, with
// stub services behind the real handlers, middleware and templates.
// viewer != nil simulates a logged-in user.
func newFixture(t *testing.T, viewer *users.User) *fixture {
	t.Helper()

	f := &fixture{
		feeds: &stubFeedService{
			home:    func(string) (*feeds.Feed, error) { return emptyFeed(), nil },
			group:   func(string, string) (*feeds.Feed, error) { return nil, groups.ErrGroupNotFound },
			profile: func(string, string) (*feeds.Feed, error) { return nil, users.ErrUserNotFound },
		},
		posts: &stubPostService{
			create: func(posts.CreatePostRequest) (*posts.Post, error) { panic("unexpected create") },
			edit:   func(posts.EditPostRequest) (*posts.Post, error) { panic("unexpected edit") },
			get:    func(int64) (*posts.PostView, error) { return nil, posts.ErrNotFound },
		},
		users: &stubUserService{
			authenticate: func(users.LoginRequest) (*users.User, error) { return nil, users.ErrInvalidCredentials },
			signup:       func(users.SignupRequest) (*users.User, error) { panic("unexpected signup") },
		},
	}

	templates, err := web.NewTemplates()
	require.NoError(t, err)

	store := sessions.NewCookieStore([]byte("test-secret"))
	auth := middleware.NewSessionAuth(store, f.users)
	handlers := web.NewHandlers(templates, f.feeds, f.posts, &stubGroupService{}, f.users, auth)

	r := chi.NewRouter()
	if viewer != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.SetTestUser(req.Context(), viewer)))
			})
		})
	}
	routes.RegisterWebRoutes(r, handlers, auth)

	f.router = r
	return f
}

func get(router chi.Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postForm(router chi.Router, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersFeed(t *testing.T) {
	f := newFixture(t, nil)
	f.feeds.home = func(rawPage string) (*feeds.Feed, error) {
		assert.Equal(t, "2", rawPage)
		return &feeds.Feed{
			Posts: []*posts.PostView{{ID: 1, Text: "hello feed", AuthorUsername: "alice"}},
			Page:  pagination.New("2", 13, 10),
		}, nil
	}

	rec := get(f.router, "/?page=2")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hello feed")
	assert.Contains(t, rec.Body.String(), "Page 2 of 2")
}

func TestGroupFeedUnknownSlugIs404(t *testing.T) {
	f := newFixture(t, nil)

	rec := get(f.router, "/group/missing/")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileUnknownUsernameIs404(t *testing.T) {
	f := newFixture(t, nil)

	rec := get(f.router, "/profile/ghost/")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostDetailUnknownIDIs404(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, http.StatusNotFound, get(f.router, "/posts/99/").Code)
	assert.Equal(t, http.StatusNotFound, get(f.router, "/posts/abc/").Code)
}

func TestCreateRequiresLogin(t *testing.T) {
	f := newFixture(t, nil)

	rec := get(f.router, "/create/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next="+url.QueryEscape("/create/"), rec.Header().Get("Location"))
}

func TestCreatePost(t *testing.T) {
	alice := &users.User{ID: 1, Username: "alice"}
	f := newFixture(t, alice)

	var captured posts.CreatePostRequest
	f.posts.create = func(req posts.CreatePostRequest) (*posts.Post, error) {
		captured = req
		return &posts.Post{ID: 9, Text: req.Text, AuthorID: req.AuthorID}, nil
	}

	rec := postForm(f.router, "/create/", url.Values{"text": {"a new post"}, "group": {"1"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/alice/", rec.Header().Get("Location"))
	assert.Equal(t, "a new post", captured.Text)
	assert.Equal(t, int64(1), captured.AuthorID)
	require.NotNil(t, captured.GroupID)
	assert.Equal(t, int64(1), *captured.GroupID)
}

func TestCreatePostEmptyTextReRendersForm(t *testing.T) {
	alice := &users.User{ID: 1, Username: "alice"}
	f := newFixture(t, alice)
	f.posts.create = func(req posts.CreatePostRequest) (*posts.Post, error) {
		return nil, posts.NewValidationError("text", "text is required")
	}

	rec := postForm(f.router, "/create/", url.Values{"text": {"   "}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "text is required")
}

func TestEditByNonAuthorRedirectsToDetail(t *testing.T) {
	bob := &users.User{ID: 2, Username: "bob"}
	f := newFixture(t, bob)
	f.posts.get = func(id int64) (*posts.PostView, error) {
		return &posts.PostView{ID: id, Text: "original", AuthorID: 1, AuthorUsername: "alice"}, nil
	}

	rec := get(f.router, "/posts/5/edit/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/5/", rec.Header().Get("Location"))

	// Submitting the form directly is refused the same silent way
	rec = postForm(f.router, "/posts/5/edit/", url.Values{"text": {"hijack"}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/5/", rec.Header().Get("Location"))
}

func TestEditByAuthor(t *testing.T) {
	alice := &users.User{ID: 1, Username: "alice"}
	f := newFixture(t, alice)
	f.posts.get = func(id int64) (*posts.PostView, error) {
		return &posts.PostView{ID: id, Text: "original", AuthorID: 1, AuthorUsername: "alice"}, nil
	}

	var captured posts.EditPostRequest
	f.posts.edit = func(req posts.EditPostRequest) (*posts.Post, error) {
		captured = req
		return &posts.Post{ID: req.PostID, Text: req.Text, AuthorID: req.CallerID}, nil
	}

	// The form comes pre-filled with the current text
	rec := get(f.router, "/posts/5/edit/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "original")

	rec = postForm(f.router, "/posts/5/edit/", url.Values{"text": {"edited"}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/5/", rec.Header().Get("Location"))
	assert.Equal(t, int64(5), captured.PostID)
	assert.Equal(t, int64(1), captured.CallerID)
	assert.Equal(t, "edited", captured.Text)
}

func TestEditRequiresLogin(t *testing.T) {
	f := newFixture(t, nil)

	rec := get(f.router, "/posts/5/edit/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next="+url.QueryEscape("/posts/5/edit/"), rec.Header().Get("Location"))
}

func TestLoginRedirectsToNext(t *testing.T) {
	f := newFixture(t, nil)
	f.users.authenticate = func(req users.LoginRequest) (*users.User, error) {
		if req.Username == "alice" && req.Password == "sekret1" {
			return &users.User{ID: 1, Username: "alice"}, nil
		}
		return nil, users.ErrInvalidCredentials
	}

	rec := postForm(f.router, "/auth/login/", url.Values{
		"username": {"alice"},
		"password": {"sekret1"},
		"next":     {"/create/"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/create/", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	f := newFixture(t, nil)
	f.users.authenticate = func(users.LoginRequest) (*users.User, error) {
		return &users.User{ID: 1, Username: "alice"}, nil
	}

	rec := postForm(f.router, "/auth/login/", url.Values{
		"username": {"alice"},
		"password": {"sekret1"},
		"next":     {"https://evil.example/"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginFailureReRendersForm(t *testing.T) {
	f := newFixture(t, nil)

	rec := postForm(f.router, "/auth/login/", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password")
}

func TestSignupRedirectsToLogin(t *testing.T) {
	f := newFixture(t, nil)
	f.users.signup = func(req users.SignupRequest) (*users.User, error) {
		return &users.User{ID: 1, Username: req.Username}, nil
	}

	rec := postForm(f.router, "/auth/signup/", url.Values{
		"username": {"alice"},
		"password": {"sekret1"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/", rec.Header().Get("Location"))
}

func TestSignupTakenUsernameReRendersForm(t *testing.T) {
	f := newFixture(t, nil)
	f.users.signup = func(users.SignupRequest) (*users.User, error) {
		return nil, users.ErrUsernameTaken
	}

	rec := postForm(f.router, "/auth/signup/", url.Values{
		"username": {"alice"},
		"password": {"sekret1"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "already taken")
}

func TestAboutPages(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, http.StatusOK, get(f.router, "/about/author/").Code)
	assert.Equal(t, http.StatusOK, get(f.router, "/about/tech/").Code)
}
