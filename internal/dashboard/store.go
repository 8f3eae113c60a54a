package dashboard

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/devfolio/backend/domain"
)

// State is the dashboard client's authentication state.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

const (
	keyProfile = "profile"
	keyToken   = "token"

	// Some storage writers have persisted the literal string "undefined".
	// It reads as present but is garbage; treat it as absent and purge.
	corruptSentinel = "undefined"
)

// CookieMirror reflects the backend token into the session cookie so
// the route guard sees an authenticated navigation.
type CookieMirror interface {
	Set(name, value string)
	Clear(name string)
}

// Navigator performs a full-page navigation after login and logout.
type Navigator interface {
	Navigate(path string)
}

// NopCookieMirror is for contexts with no cookie jar, such as the CLI.
type NopCookieMirror struct{}

func (NopCookieMirror) Set(string, string) {}
func (NopCookieMirror) Clear(string)       {}

// FuncNavigator adapts a function to the Navigator interface.
type FuncNavigator func(path string)

func (f FuncNavigator) Navigate(path string) { f(path) }

// Store mirrors the authenticated admin's profile and token across
// three locations that must stay consistent: the persistent storage
// (two keys), the session cookie, and the in-process state. Every
// failure reading stored state degrades to anonymous, never to an
// error surfaced to the caller.
type Store struct {
	storage    Storage
	api        API
	cookies    CookieMirror
	nav        Navigator
	cookieName string
	logger     *zap.Logger

	mu      sync.Mutex
	state   State
	profile *domain.Profile
	token   string
}

func NewStore(storage Storage, api API, cookies CookieMirror, nav Navigator, cookieName string, logger *zap.Logger) *Store {
	if cookies == nil {
		cookies = NopCookieMirror{}
	}
	if nav == nil {
		nav = FuncNavigator(func(string) {})
	}
	if cookieName == "" {
		cookieName = "session"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		storage:    storage,
		api:        api,
		cookies:    cookies,
		nav:        nav,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Init loads persisted state. The store is authenticated only when both
// keys are present and the profile parses; anything else (absent keys,
// the "undefined" sentinel, unparseable JSON) leaves it anonymous, with
// corrupted keys purged.
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateAnonymous
	s.profile = nil
	s.token = ""

	rawProfile, okProfile := s.readStored(keyProfile)
	rawToken, okToken := s.readStored(keyToken)
	if !okProfile || !okToken {
		return
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(rawProfile), &profile); err != nil {
		s.logger.Warn("purging unparseable stored profile", zap.Error(err))
		s.deleteStored(keyProfile)
		return
	}

	s.state = StateAuthenticated
	s.profile = &profile
	s.token = rawToken
}

// Login authenticates against the external backend and, on success,
// persists the profile and token, mirrors the token into the session
// cookie and navigates to the dashboard. On failure the state stays
// anonymous and the error is returned for the caller to surface.
func (s *Store) Login(username, password string) error {
	result, err := s.api.AdminLogin(username, password)
	if err != nil {
		s.logger.Warn("backend login failed", zap.Error(err))
		return err
	}

	profile := result.Admin
	profile.Token = result.Token

	s.mu.Lock()
	rawProfile, err := json.Marshal(&profile)
	if err == nil {
		err = s.storage.Set(keyProfile, string(rawProfile))
	}
	if err == nil {
		err = s.storage.Set(keyToken, result.Token)
	}
	if err != nil {
		s.mu.Unlock()
		return domain.WrapError(domain.ErrCodeInternal, "persisting session state", err)
	}

	s.cookies.Set(s.cookieName, result.Token)
	s.state = StateAuthenticated
	s.profile = &profile
	s.token = result.Token
	s.mu.Unlock()

	s.nav.Navigate("/dashboard")
	return nil
}

// Logout clears all three locations and navigates to the login page.
// The call to the internal logout endpoint is fire-and-forget: local
// cleanup and the redirect happen regardless of its outcome.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.profile = nil
	s.token = ""
	s.deleteStored(keyProfile)
	s.deleteStored(keyToken)
	s.cookies.Clear(s.cookieName)
	s.mu.Unlock()

	go func() {
		if err := s.api.Logout(); err != nil {
			s.logger.Debug("logout request failed", zap.Error(err))
		}
	}()

	s.nav.Navigate("/login")
}

// Refresh re-reads persisted state, resynchronizing after external
// changes to the storage.
func (s *Store) Refresh() {
	s.Init()
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Profile returns a copy of the cached profile, or nil when anonymous.
func (s *Store) Profile() *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	profile := *s.profile
	return &profile
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// readStored fetches a key, treating read errors and the corruption
// sentinel as absence. Sentinel values are purged on sight.
func (s *Store) readStored(key string) (string, bool) {
	value, err := s.storage.Get(key)
	if err != nil {
		if err != ErrKeyNotFound {
			s.logger.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if value == corruptSentinel {
		s.logger.Warn("purging corrupted storage key", zap.String("key", key))
		s.deleteStored(key)
		return "", false
	}
	return value, true
}

func (s *Store) deleteStored(key string) {
	if err := s.storage.Delete(key); err != nil {
		s.logger.Warn("storage delete failed", zap.String("key", key), zap.Error(err))
	}
}
