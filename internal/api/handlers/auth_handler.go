package handlers

import (
	"net/http"

	"github.com/ev-charging/api/internal/api/middleware"
	"github.com/ev-charging/api/internal/api/types"
	"github.com/ev-charging/api/internal/services"
)

type AuthHandler struct {
	responder
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService, hideErrors bool) *AuthHandler {
	return &AuthHandler{responder: responder{hideErrors: hideErrors}, svc: svc}
}

// Register godoc
// @Summary  Register a new user
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body     types.RegisterRequest true "New account"
// @Success  201  {object} services.AuthResult
// @Failure  400  {object} types.ErrorResponse
// @Failure  409  {object} types.ErrorResponse
// @Router   /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Login godoc
// @Summary  Exchange credentials for a token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body     types.LoginRequest true "Credentials"
// @Success  200  {object} services.AuthResult
// @Failure  401  {object} types.ErrorResponse
// @Router   /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Me godoc
// @Summary  Current user profile
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} types.DataResponse{data=models.UserSummary}
// @Failure  401 {object} types.ErrorResponse
// @Failure  404 {object} types.ErrorResponse
// @Router   /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	me, err := h.svc.Me(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.DataResponse{Success: true, Data: me})
}

// Logout acknowledges a logout. Tokens are stateless, so clients discard
// theirs.
// @Summary  Log out
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} types.DataResponse
// @Router   /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.DataResponse{Success: true, Message: "Logged out successfully"})
}
