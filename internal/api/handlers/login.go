package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mriera/bloglist-backend/internal/api/httpx"
	"github.com/mriera/bloglist-backend/internal/services"
)

type LoginHandler struct {
	Users *services.UserService
}

func NewLoginHandler(us *services.UserService) *LoginHandler {
	return &LoginHandler{Users: us}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad request")
		return
	}
	token, u, err := h.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loginResp{
		Token:    token,
		Username: u.Username,
		Name:     u.Name,
	})
}
