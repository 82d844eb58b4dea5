package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mriera/bloglist-backend/internal/auth"
	"github.com/mriera/bloglist-backend/internal/config"
	"github.com/mriera/bloglist-backend/internal/repository/memory"
	"github.com/mriera/bloglist-backend/internal/services"
)

type testEnv struct {
	router http.Handler
	users  *memory.UsersRepo
	blogs  *memory.BlogsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{Env: "test", JWTSecret: "test-secret", RateRPS: 1000}
	users := memory.NewUsers()
	blogs := memory.NewBlogs()
	tm := auth.NewTokenManager(cfg.JWTSecret)
	us := services.NewUserService(users, tm)
	bs := services.NewBlogService(blogs, users)
	return &testEnv{
		router: NewRouter(cfg, us, bs, users, blogs),
		users:  users,
		blogs:  blogs,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) registerAndLogin(t *testing.T, username, name, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"username": username, "name": name, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Name     string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, username, resp.Username)
	require.Equal(t, name, resp.Name)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestUnknownEndpoint(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/api/nonsense", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "unknown endpoint", errorBody(t, rec))
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestCreateUserValidation(t *testing.T) {
	e := newTestEnv(t)
	e.registerAndLogin(t, "root", "root", "root")

	cases := []struct {
		name    string
		payload map[string]string
		wantMsg string
	}{
		{
			name:    "short username",
			payload: map[string]string{"username": "ab", "name": "shortName", "password": "asd"},
			wantMsg: "'ab'",
		},
		{
			name:    "short password",
			payload: map[string]string{"username": "dude", "name": "shortPassword", "password": "ab"},
			wantMsg: "password must be at least 3 characters long",
		},
		{
			name:    "duplicate username",
			payload: map[string]string{"username": "root", "name": "duplicatedUser", "password": "root"},
			wantMsg: "unique",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before, err := e.users.List(context.Background())
			require.NoError(t, err)

			rec := e.do(t, http.MethodPost, "/api/users", "", tc.payload)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, errorBody(t, rec), tc.wantMsg)

			after, err := e.users.List(context.Background())
			require.NoError(t, err)
			require.Len(t, after, len(before))
		})
	}
}

func TestListUsersHidesPasswordHash(t *testing.T) {
	e := newTestEnv(t)
	e.registerAndLogin(t, "root", "root", "root")

	rec := e.do(t, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "password")

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	require.Equal(t, "root", users[0]["username"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	e := newTestEnv(t)
	e.registerAndLogin(t, "root", "root", "root")

	rec := e.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": "root", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": "nobody", "password": "root",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBlogRequiresToken(t *testing.T) {
	e := newTestEnv(t)
	e.registerAndLogin(t, "root", "root", "root")

	payload := map[string]any{"title": "No Auth", "url": "https://example.com"}

	rec := e.do(t, http.MethodPost, "/api/blogs", "", payload)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "missing or invalid token", errorBody(t, rec))

	rec = e.do(t, http.MethodPost, "/api/blogs", "not-a-valid-token", payload)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	all, err := e.blogs.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCreateBlogWithToken(t *testing.T) {
	e := newTestEnv(t)
	token := e.registerAndLogin(t, "root", "root", "root")

	rec := e.do(t, http.MethodPost, "/api/blogs", token, map[string]any{
		"title":  "Canonical Blog",
		"author": "rich",
		"url":    "https://example.com/canonical",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Likes int    `json:"likes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Canonical Blog", created.Title)
	require.Equal(t, 0, created.Likes)

	// Listed with the owner denormalized.
	rec = e.do(t, http.MethodGet, "/api/blogs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		ID    string `json:"id"`
		Owner struct {
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, created.ID, list[0].ID)
	require.Equal(t, "root", list[0].Owner.Username)

	// The owner's blog list references the new blog.
	rec = e.do(t, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []struct {
		Username string   `json:"username"`
		Blogs    []string `json:"blogs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	require.Contains(t, users[0].Blogs, created.ID)
}

func TestCreateBlogMissingFields(t *testing.T) {
	e := newTestEnv(t)
	token := e.registerAndLogin(t, "root", "root", "root")

	// Both title and url missing: the request stops at 400 and nothing
	// is persisted.
	rec := e.do(t, http.MethodPost, "/api/blogs", token, map[string]any{"author": "anon"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	all, err := e.blogs.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestGetBlogByID(t *testing.T) {
	e := newTestEnv(t)
	token := e.registerAndLogin(t, "root", "root", "root")

	rec := e.do(t, http.MethodPost, "/api/blogs", token, map[string]any{
		"title": "a", "url": "https://a",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = e.do(t, http.MethodGet, "/api/blogs/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/blogs/64b5fc2e8f1b2c3d4e5f6071", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/blogs/not-hex", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "malformed id", errorBody(t, rec))
}

func TestUpdateLikesWithoutAuth(t *testing.T) {
	e := newTestEnv(t)
	token := e.registerAndLogin(t, "root", "root", "root")

	rec := e.do(t, http.MethodPost, "/api/blogs", token, map[string]any{
		"title": "a", "url": "https://a",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// No token on PUT: allowed.
	rec = e.do(t, http.MethodPut, "/api/blogs/"+created.ID, "", map[string]int{"likes": 12})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Likes int `json:"likes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, 12, updated.Likes)

	rec = e.do(t, http.MethodPut, "/api/blogs/"+created.ID, "", map[string]int{"likes": -1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/blogs/64b5fc2e8f1b2c3d4e5f6071", "", map[string]int{"likes": 1})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteBlogWithoutAuth(t *testing.T) {
	e := newTestEnv(t)
	token := e.registerAndLogin(t, "root", "root", "root")

	rec := e.do(t, http.MethodPost, "/api/blogs", token, map[string]any{
		"title": "a", "url": "https://a",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// No token on DELETE: allowed, and repeated deletes stay 204.
	rec = e.do(t, http.MethodDelete, "/api/blogs/"+created.ID, "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/blogs/"+created.ID, "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/blogs/not-hex", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTestingReset(t *testing.T) {
	e := newTestEnv(t)
	token := e.registerAndLogin(t, "root", "root", "root")

	rec := e.do(t, http.MethodPost, "/api/blogs", token, map[string]any{
		"title": "a", "url": "https://a",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/testing/reset", "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	users, err := e.users.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, users)

	blogs, err := e.blogs.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, blogs)
}
