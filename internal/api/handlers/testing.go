package handlers

import (
	"net/http"

	"github.com/mriera/bloglist-backend/internal/api/httpx"
	repo "github.com/mriera/bloglist-backend/internal/repository"
)

// TestingHandler wipes both collections. Only mounted when the app runs
// in the test environment.
type TestingHandler struct {
	Users repo.Users
	Blogs repo.Blogs
}

func NewTestingHandler(users repo.Users, blogs repo.Blogs) *TestingHandler {
	return &TestingHandler{Users: users, Blogs: blogs}
}

func (h *TestingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Blogs.DeleteAll(r.Context()); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	if err := h.Users.DeleteAll(r.Context()); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
