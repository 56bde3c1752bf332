package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	appcfg "github.com/inkwell-notes/core/internal/config"
	"github.com/inkwell-notes/core/internal/middleware"
	"github.com/inkwell-notes/core/internal/pkg/response"
	sessionpkg "github.com/inkwell-notes/core/internal/pkg/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db  *gorm.DB
	svc *Service
	cfg appcfg.OAuthConfig
	log *zap.Logger
}

func NewHandler(db *gorm.DB, svc *Service, cfg appcfg.OAuthConfig, log *zap.Logger) *Handler {
	return &Handler{db: db, svc: svc, cfg: cfg, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.GET("/redirect", h.redirectDefault)
	g.GET("/redirect/:provider", h.redirect)
	g.GET("/callback", h.callbackDefault)
	g.GET("/callback/:provider", h.callback)
	g.POST("/login", h.login)
	g.POST("/logout", authMW, h.logout)
	g.GET("/me", authMW, h.me)
}

func (h *Handler) findProvider(providerType string) *appcfg.OAuthProvider {
	for _, p := range h.cfg.Providers {
		if p.Enabled && strings.EqualFold(p.Type, providerType) && p.ClientID != "" {
			selected := p
			return &selected
		}
	}
	return nil
}

func (h *Handler) defaultProvider() *appcfg.OAuthProvider {
	for _, p := range h.cfg.Providers {
		if p.Enabled && p.ClientID != "" {
			selected := p
			return &selected
		}
	}
	return nil
}

// GET /auth/redirect
func (h *Handler) redirectDefault(c *gin.Context) {
	provider := h.defaultProvider()
	if provider == nil {
		response.NotFoundMsg(c, "no OAuth provider configured")
		return
	}
	h.redirectTo(c, provider)
}

// GET /auth/redirect/:provider
func (h *Handler) redirect(c *gin.Context) {
	provider := h.findProvider(c.Param("provider"))
	if provider == nil {
		response.NotFoundMsg(c, "OAuth provider not found or not configured")
		return
	}
	h.redirectTo(c, provider)
}

func (h *Handler) redirectTo(c *gin.Context, provider *appcfg.OAuthProvider) {
	target := authorizeURL(*provider, callbackURI(c, strings.ToLower(provider.Type)), c.Query("callback_url"))
	if target == "" {
		response.NotFoundMsg(c, "OAuth provider not found or not configured")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, target)
}

// GET /auth/callback
func (h *Handler) callbackDefault(c *gin.Context) {
	provider := h.defaultProvider()
	if provider == nil {
		response.NotFoundMsg(c, "no OAuth provider configured")
		return
	}
	h.completeCallback(c, provider)
}

// GET /auth/callback/:provider?code=&state=
func (h *Handler) callback(c *gin.Context) {
	provider := h.findProvider(c.Param("provider"))
	if provider == nil {
		response.NotFoundMsg(c, "OAuth provider not found or not configured")
		return
	}
	h.completeCallback(c, provider)
}

func (h *Handler) completeCallback(c *gin.Context, provider *appcfg.OAuthProvider) {
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "missing code")
		return
	}

	providerType := strings.ToLower(provider.Type)
	ctx := c.Request.Context()

	accessToken, err := exchangeCode(ctx, *provider, code, callbackURI(c, providerType))
	if err != nil {
		h.log.Error("oauth token exchange", zap.String("provider", providerType), zap.Error(err))
		response.InternalError(c)
		return
	}

	profile, err := fetchProfile(ctx, providerType, accessToken)
	if err != nil {
		h.log.Error("oauth profile fetch", zap.String("provider", providerType), zap.Error(err))
		response.InternalError(c)
		return
	}

	user, err := h.svc.CompleteLogin(ctx, providerType, profile, c.ClientIP())
	if err != nil {
		h.log.Error("oauth login", zap.String("provider", providerType), zap.Error(err))
		response.InternalError(c)
		return
	}

	token, _, err := sessionpkg.Issue(h.db, user.ID, c.ClientIP(), c.Request.UserAgent(), sessionpkg.DefaultTTL)
	if err != nil {
		h.log.Error("issue session", zap.Error(err))
		response.InternalError(c)
		return
	}
	setAuthTokenCookie(c, token)

	if callbackURL := strings.TrimSpace(c.Query("state")); callbackURL != "" {
		if redirectWithToken(c, callbackURL, token) {
			return
		}
	}

	response.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"avatar": user.Avatar,
		},
	})
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var p loginPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := p.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	user, err := h.svc.LoginWithPassword(p.Email, p.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordLoginUnavailable) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.BadRequest(c, "invalid email or password")
		return
	}

	token, _, err := sessionpkg.Issue(h.db, user.ID, c.ClientIP(), c.Request.UserAgent(), sessionpkg.DefaultTTL)
	if err != nil {
		h.log.Error("issue session", zap.Error(err))
		response.InternalError(c)
		return
	}
	setAuthTokenCookie(c, token)

	response.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"avatar": user.Avatar,
		},
	})
}

// POST /auth/logout
func (h *Handler) logout(c *gin.Context) {
	_ = sessionpkg.Revoke(h.db, middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	clearAuthTokenCookie(c)
	response.NoContent(c)
}

// GET /auth/me
func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, user)
}

func setAuthTokenCookie(c *gin.Context, token string) {
	const maxAge = 14 * 24 * 60 * 60
	secure := c.Request.TLS != nil
	c.SetCookie(middleware.AuthCookie, token, maxAge, "/", "", secure, false)
}

func clearAuthTokenCookie(c *gin.Context) {
	secure := c.Request.TLS != nil
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", secure, false)
}

func redirectWithToken(c *gin.Context, callbackURL, token string) bool {
	target, err := url.Parse(strings.TrimSpace(callbackURL))
	if err != nil || target == nil {
		return false
	}
	q := target.Query()
	q.Set("token", token)
	target.RawQuery = q.Encode()
	c.Redirect(http.StatusTemporaryRedirect, target.String())
	return true
}
