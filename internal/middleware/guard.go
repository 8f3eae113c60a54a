package middleware

import (
	"net/url"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// GuardConfig describes which paths the route guard protects and where
// unauthenticated traffic is sent.
type GuardConfig struct {
	ProtectedPrefix string
	LoginPath       string
	CookieName      string
}

func (c *GuardConfig) applyDefaults() {
	if c.ProtectedPrefix == "" {
		c.ProtectedPrefix = "/dashboard"
	}
	if c.LoginPath == "" {
		c.LoginPath = "/login"
	}
	if c.CookieName == "" {
		c.CookieName = "session"
	}
}

// RouteGuard redirects requests for protected paths that carry no
// session cookie. It checks presence only, never the signature: cheap
// enough to run on every request, while real verification happens when
// the page calls /api/auth/me. A forged cookie gets past this layer but
// fails there, so protected data never leaks.
func RouteGuard(cfg GuardConfig, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			path := string(ctx.Path())
			if !strings.HasPrefix(path, cfg.ProtectedPrefix) {
				next(ctx)
				return
			}
			if len(ctx.Request.Header.Cookie(cfg.CookieName)) > 0 {
				next(ctx)
				return
			}

			target := cfg.LoginPath + "?from=" + url.QueryEscape(path)
			logger.Debug("guard redirect", zap.String("path", path))
			// Location is set verbatim; ctx.Redirect would expand it to an
			// absolute URI.
			ctx.Response.Header.Set(fasthttp.HeaderLocation, target)
			ctx.SetStatusCode(fasthttp.StatusFound)
		}
	}
}
