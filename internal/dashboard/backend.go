package dashboard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/devfolio/backend/domain"
)

// LoginResult is what the external backend hands back on a successful
// admin login: the profile to cache and the bearer token for resource
// calls.
type LoginResult struct {
	Admin domain.Profile
	Token string
}

// API is the slice of the external REST backend the session store
// needs. The store never verifies the backend token locally; it only
// carries it.
type API interface {
	AdminLogin(username, password string) (*LoginResult, error)
	Logout() error
}

// Client talks to the external REST backend over HTTP. backendURL is
// the resource API base; siteURL is the portfolio site itself, home of
// the internal logout endpoint.
type Client struct {
	backendURL string
	siteURL    string
	http       *fasthttp.Client
	logger     *zap.Logger
}

func NewClient(backendURL, siteURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		backendURL: backendURL,
		siteURL:    siteURL,
		http:       &fasthttp.Client{},
		logger:     logger,
	}
}

// adminLoginResponse tolerates both response shapes the backend has
// shipped: flat {admin, token} and nested {data: {admin, token}}.
type adminLoginResponse struct {
	Admin *domain.Profile `json:"admin"`
	Token string          `json:"token"`
	Data  *struct {
		Admin *domain.Profile `json:"admin"`
		Token string          `json:"token"`
	} `json:"data"`
}

// AdminLogin authenticates against the backend's own login endpoint.
// No request timeout: an unreachable backend blocks the caller, which
// is the observed behavior of the login form.
func (c *Client) AdminLogin(username, password string) (*LoginResult, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	req.SetRequestURI(c.backendURL + "/admin/login")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := c.http.Do(req, resp); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "backend login request failed", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		if resp.StatusCode() == fasthttp.StatusUnauthorized {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.WrapError(domain.ErrCodeUnavailable, fmt.Sprintf("backend login returned %d", resp.StatusCode()), nil)
	}

	var parsed adminLoginResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "backend login response unreadable", err)
	}

	admin, token := parsed.Admin, parsed.Token
	if token == "" && parsed.Data != nil {
		admin, token = parsed.Data.Admin, parsed.Data.Token
	}
	if admin == nil || token == "" {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "backend login response missing admin or token", nil)
	}

	return &LoginResult{Admin: *admin, Token: token}, nil
}

// Logout calls the site's internal logout endpoint. Best-effort only;
// callers ignore the result.
func (c *Client) Logout() error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.siteURL + "/api/auth/logout")
	req.Header.SetMethod(fasthttp.MethodPost)

	return c.http.DoTimeout(req, resp, 5*time.Second)
}
