package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/devfolio/backend/api/transport"
	"github.com/devfolio/backend/pkg/httpcontext"
	appLogger "github.com/devfolio/backend/pkg/logger"
	authUC "github.com/devfolio/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc         *authUC.UseCase
	cookieName string
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, cookieName string) *AuthHandler {
	if cookieName == "" {
		cookieName = "session"
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		cookieName:  cookieName,
	}
}

// Login handles POST /api/auth/login. A malformed body is a 400, bad
// credentials are a generic 401, success sets the session cookie and
// answers {ok:true}.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()
	log := appLogger.WithRequestID(stdCtx, h.logger)

	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Error: "Bad request"})
		return
	}

	token, err := h.uc.Login(req.Username, req.Password)
	if err != nil {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.ErrorResponse{Error: "Invalid credentials"})
		return
	}

	h.setSessionCookie(ctx, token)
	log.Info("session issued", zap.String("username", req.Username))
	h.respondJSON(ctx, http.StatusOK, transport.OKResponse{OK: true})
}

// Me handles GET /api/auth/me. Any verification failure collapses to
// 401 {authenticated:false}; the caller learns nothing about why.
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()
	log := appLogger.WithRequestID(stdCtx, h.logger)

	token := ctx.Request.Header.Cookie(h.cookieName)
	if len(token) == 0 {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.MeResponse{Authenticated: false})
		return
	}

	username, err := h.uc.Identify(string(token))
	if err != nil {
		log.Debug("session verification failed", zap.Error(err))
		h.respondJSON(ctx, http.StatusUnauthorized, transport.MeResponse{Authenticated: false})
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.MeResponse{Authenticated: true, Username: username})
}

// Logout handles POST /api/auth/logout and expires the session cookie.
// Stateless tokens cannot be revoked server-side; removing the cookie
// is the whole operation.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	h.clearSessionCookie(ctx)
	h.respondJSON(ctx, http.StatusOK, transport.OKResponse{OK: true})
}

func (h *AuthHandler) setSessionCookie(ctx *fasthttp.RequestCtx, token string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(h.cookieName)
	c.SetValue(token)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetMaxAge(int(h.uc.MaxAge() / time.Second))
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	ctx.Response.Header.SetCookie(c)
}

func (h *AuthHandler) clearSessionCookie(ctx *fasthttp.RequestCtx) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(h.cookieName)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetExpire(fasthttp.CookieExpireDelete)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	ctx.Response.Header.SetCookie(c)
}
