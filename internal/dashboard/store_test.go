package dashboard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devfolio/backend/domain"
)

type fakeAPI struct {
	loginResult *LoginResult
	loginErr    error

	logoutCalled chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{logoutCalled: make(chan struct{}, 1)}
}

func (f *fakeAPI) AdminLogin(username, password string) (*LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAPI) Logout() error {
	select {
	case f.logoutCalled <- struct{}{}:
	default:
	}
	return nil
}

type recordingCookies struct {
	mu      sync.Mutex
	values  map[string]string
	cleared []string
}

func newRecordingCookies() *recordingCookies {
	return &recordingCookies{values: make(map[string]string)}
}

func (c *recordingCookies) Set(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
}

func (c *recordingCookies) Clear(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, name)
	c.cleared = append(c.cleared, name)
}

type testEnv struct {
	storage *MemoryStorage
	api     *fakeAPI
	cookies *recordingCookies
	visited []string
	store   *Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		storage: NewMemoryStorage(),
		api:     newFakeAPI(),
		cookies: newRecordingCookies(),
	}
	nav := FuncNavigator(func(path string) { env.visited = append(env.visited, path) })
	env.store = NewStore(env.storage, env.api, env.cookies, nav, "session", nil)
	return env
}

func TestInit_EmptyStorage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.Init()

	require.Equal(t, StateAnonymous, env.store.State())
	require.Nil(t, env.store.Profile())
	require.Empty(t, env.store.Token())
}

func TestInit_Authenticated(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, env.storage.Set("profile", `{"id":"1","name":"Ada","email":"ada@example.com"}`))
	require.NoError(t, env.storage.Set("token", "backend-token"))

	env.store.Init()

	require.Equal(t, StateAuthenticated, env.store.State())
	require.Equal(t, "Ada", env.store.Profile().Name)
	require.Equal(t, "backend-token", env.store.Token())
}

func TestInit_CorruptSentinelPurged(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, env.storage.Set("profile", "undefined"))
	require.NoError(t, env.storage.Set("token", "backend-token"))

	env.store.Init()

	require.Equal(t, StateAnonymous, env.store.State())
	_, err := env.storage.Get("profile")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestInit_UnparseableProfilePurged(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, env.storage.Set("profile", "{{{not json"))
	require.NoError(t, env.storage.Set("token", "backend-token"))

	env.store.Init()

	require.Equal(t, StateAnonymous, env.store.State())
	_, err := env.storage.Get("profile")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestInit_TokenMissing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, env.storage.Set("profile", `{"id":"1","name":"Ada"}`))

	env.store.Init()
	require.Equal(t, StateAnonymous, env.store.State())
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.api.loginResult = &LoginResult{
		Admin: domain.Profile{ID: "1", Name: "Ada", Email: "ada@example.com"},
		Token: "backend-token",
	}

	require.NoError(t, env.store.Login("admin", "s3cret"))

	require.Equal(t, StateAuthenticated, env.store.State())
	require.Equal(t, "backend-token", env.store.Token())
	require.Equal(t, "backend-token", env.store.Profile().Token)

	storedToken, err := env.storage.Get("token")
	require.NoError(t, err)
	require.Equal(t, "backend-token", storedToken)

	require.Equal(t, "backend-token", env.cookies.values["session"])
	require.Equal(t, []string{"/dashboard"}, env.visited)
}

func TestLogin_Failure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.api.loginErr = errors.New("connection refused")

	err := env.store.Login("admin", "s3cret")
	require.Error(t, err)

	require.Equal(t, StateAnonymous, env.store.State())
	require.Empty(t, env.cookies.values)
	require.Empty(t, env.visited)
	_, getErr := env.storage.Get("token")
	require.ErrorIs(t, getErr, ErrKeyNotFound)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.api.loginResult = &LoginResult{
		Admin: domain.Profile{ID: "1", Name: "Ada"},
		Token: "backend-token",
	}
	require.NoError(t, env.store.Login("admin", "s3cret"))

	env.store.Logout()

	require.Equal(t, StateAnonymous, env.store.State())
	require.Nil(t, env.store.Profile())

	_, err := env.storage.Get("profile")
	require.ErrorIs(t, err, ErrKeyNotFound)
	_, err = env.storage.Get("token")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.Contains(t, env.cookies.cleared, "session")
	require.Equal(t, []string{"/dashboard", "/login"}, env.visited)

	select {
	case <-env.api.logoutCalled:
	case <-time.After(time.Second):
		t.Fatal("logout endpoint was never called")
	}
}

func TestRefresh_ResyncsAfterExternalChange(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.Init()
	require.Equal(t, StateAnonymous, env.store.State())

	require.NoError(t, env.storage.Set("profile", `{"id":"1","name":"Ada"}`))
	require.NoError(t, env.storage.Set("token", "backend-token"))

	env.store.Refresh()
	require.Equal(t, StateAuthenticated, env.store.State())
}
