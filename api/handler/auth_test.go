package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/devfolio/backend/api/transport"
	"github.com/devfolio/backend/internal/session"
	authUC "github.com/devfolio/backend/usecase/auth"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	creds := session.NewCredentials("admin", "s3cret")
	uc := authUC.New(creds, session.NewCodec("test-secret"), time.Hour, nil)
	return NewAuthHandler(uc, nil, nil, "session")
}

func postJSON(uri, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI(uri)
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.Header.SetContentType("application/json")
	ctx.Request.SetBodyString(body)
	return &ctx
}

func responseCookie(t *testing.T, ctx *fasthttp.RequestCtx, name string) *fasthttp.Cookie {
	t.Helper()
	c := fasthttp.AcquireCookie()
	t.Cleanup(func() { fasthttp.ReleaseCookie(c) })
	c.SetKey(name)
	if !ctx.Response.Header.Cookie(c) {
		return nil
	}
	return c
}

func TestLogin_SuccessThenMe(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(t)

	loginCtx := postJSON("/api/auth/login", `{"username":"admin","password":"s3cret"}`)
	h.Login(loginCtx)

	require.Equal(t, fasthttp.StatusOK, loginCtx.Response.StatusCode())

	var ok transport.OKResponse
	require.NoError(t, json.Unmarshal(loginCtx.Response.Body(), &ok))
	require.True(t, ok.OK)

	cookie := responseCookie(t, loginCtx, "session")
	require.NotNil(t, cookie, "missing session cookie")
	require.NotEmpty(t, cookie.Value())
	require.Equal(t, "/", string(cookie.Path()))
	require.True(t, cookie.HTTPOnly())
	require.Equal(t, 3600, cookie.MaxAge())
	require.Equal(t, fasthttp.CookieSameSiteLaxMode, cookie.SameSite())
	require.False(t, cookie.Secure())

	var meCtx fasthttp.RequestCtx
	meCtx.Request.SetRequestURI("/api/auth/me")
	meCtx.Request.Header.SetCookie("session", string(cookie.Value()))
	h.Me(&meCtx)

	require.Equal(t, fasthttp.StatusOK, meCtx.Response.StatusCode())
	var me transport.MeResponse
	require.NoError(t, json.Unmarshal(meCtx.Response.Body(), &me))
	require.True(t, me.Authenticated)
	require.Equal(t, "admin", me.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(t)
	ctx := postJSON("/api/auth/login", `{"username":"admin","password":"wrong"}`)
	h.Login(ctx)

	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	require.JSONEq(t, `{"error":"Invalid credentials"}`, string(ctx.Response.Body()))
	require.Nil(t, responseCookie(t, ctx, "session"))
}

func TestLogin_MalformedBody(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(t)
	ctx := postJSON("/api/auth/login", "not json at all")
	h.Login(ctx)

	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	require.JSONEq(t, `{"error":"Bad request"}`, string(ctx.Response.Body()))
}

func TestMe_NoCookie(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(t)
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/api/auth/me")
	h.Me(&ctx)

	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	require.JSONEq(t, `{"authenticated":false}`, string(ctx.Response.Body()))
}

func TestMe_ForgedCookie(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(t)
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/api/auth/me")
	ctx.Request.Header.SetCookie("session", "forged.value")
	h.Me(&ctx)

	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	require.JSONEq(t, `{"authenticated":false}`, string(ctx.Response.Body()))
}

func TestLogout_ExpiresCookie(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(t)
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/api/auth/logout")
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	h.Logout(&ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.JSONEq(t, `{"ok":true}`, string(ctx.Response.Body()))

	cookie := responseCookie(t, &ctx, "session")
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value())
	require.True(t, cookie.Expire().Before(time.Now()))
}
