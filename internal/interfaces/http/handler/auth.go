package handler

import (
	"net/http"
	"strings"

	identityapp "github.com/OpianKyle/opianrer-sub001/internal/application/identity"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/config"
	"github.com/OpianKyle/opianrer-sub001/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refresh_token"

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	cookieCfg   config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, cookieCfg config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieCfg:   cookieCfg,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/logout-all", h.LogoutAll)
		auth.GET("/me", h.Me)
	}
}

// Login authenticates a user and issues a token pair. The refresh token
// is also set as an HTTP-only cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	h.Success(c, resp)
}

// Refresh exchanges a refresh token (cookie or body) for a new pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := h.refreshTokenFromRequest(c)
	if refreshToken == "" {
		h.Unauthorized(c, "Refresh token is required")
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		h.HandleDomainError(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	h.Success(c, resp)
}

// Logout revokes the current session's tokens
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken := strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)
	refreshToken := h.refreshTokenFromRequest(c)

	if err := h.authService.Logout(c.Request.Context(), accessToken, refreshToken); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	h.NoContent(c)
}

// LogoutAll revokes every session of the authenticated user
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.LogoutAll(c.Request.Context(), userID.String()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	h.NoContent(c)
}

// Me returns the authenticated user's claims-derived identity
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.Success(c, gin.H{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
	})
}

func (h *AuthHandler) refreshTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie != "" {
		return cookie
	}
	var req identityapp.RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(sameSiteMode(h.cookieCfg.SameSite))
	c.SetCookie(refreshCookieName, token, 0, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(sameSiteMode(h.cookieCfg.SameSite))
	c.SetCookie(refreshCookieName, "", -1, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func sameSiteMode(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
