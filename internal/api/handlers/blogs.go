package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mriera/bloglist-backend/internal/api/httpx"
	"github.com/mriera/bloglist-backend/internal/api/validate"
	"github.com/mriera/bloglist-backend/internal/middleware"
	"github.com/mriera/bloglist-backend/internal/services"
)

type BlogsHandler struct {
	Blogs *services.BlogService
}

func NewBlogsHandler(bs *services.BlogService) *BlogsHandler {
	return &BlogsHandler{Blogs: bs}
}

func (h *BlogsHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.Blogs.List(r.Context())
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, blogs)
}

func (h *BlogsHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Blogs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

// Create requires an authenticated user; the RequireUser middleware has
// already bound it to the context.
func (h *BlogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}
	var in services.CreateBlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad request")
		return
	}
	b, err := h.Blogs.Create(r.Context(), owner, in)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

type updateLikesReq struct {
	Likes int `json:"likes"`
}

func (h *BlogsHandler) UpdateLikes(w http.ResponseWriter, r *http.Request) {
	var req updateLikesReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad request")
		return
	}
	if ef := validate.MinInt("likes", int64(req.Likes), 0); ef != nil {
		httpx.WriteError(w, http.StatusBadRequest, validate.Errs{*ef}.Error())
		return
	}
	b, err := h.Blogs.UpdateLikes(r.Context(), chi.URLParam(r, "id"), req.Likes)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BlogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Blogs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
