package api

import (
	"net/http"

	reqdto "academy-booking/internal/handler/dto/request"
	resdto "academy-booking/internal/handler/dto/response"
	"academy-booking/internal/handler/httperr"
	"academy-booking/internal/handler/middleware"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/pkg/cookie"
	"academy-booking/internal/usecase/commands"
	"academy-booking/internal/usecase/queries"
	"academy-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds    commands.AuthCommands
	members queries.MemberQueries
	cfg     config.Config
}

func NewAuthHandler(cmds commands.AuthCommands, members queries.MemberQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{cmds: cmds, members: members, cfg: cfg}
}

// @Summary Member login
// @Description Sign in with name and phone; the account is created on first sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.MemberLogin(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	cookie.SetAccessToken(c, h.cfg.Cookie, result.AccessToken, h.cfg.JWT.Duration)
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Administrator login
// @Description Sign in as the academy administrator with the PIN
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.AdminLoginRequest true "Admin login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/admin [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req reqdto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.AdminLogin(c.Request.Context(), req.Pin)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	cookie.SetAccessToken(c, h.cfg.Cookie, result.AccessToken, h.cfg.JWT.Duration)
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Logout
// @Description Clear the access token cookie
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// tokens are stateless; only the cookie can be revoked here
	cookie.ClearAccessToken(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Get current member
// @Description Current member with children and plan
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.MemberResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, shared.ErrPermissionDenied, "User not authenticated", nil)
		return
	}

	view, err := h.members.Me(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromMemberView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
