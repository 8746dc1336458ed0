package testapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// newServer serves fixed bodies per endpoint path and records the last request.
func newServer(t *testing.T, bodies map[string]string, last *atomic.Value) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if last != nil {
			last.Store(r.URL.String())
		}
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew(t *testing.T) {
	t.Run("missing deploy url", func(t *testing.T) {
		_, err := New(Params{})
		require.ErrorIs(t, err, ErrNoDeployURL)
		assert.EqualError(t, err, "deploy url is required")
	})

	t.Run("build defaults to zero", func(t *testing.T) {
		c, err := New(Params{DeployURL: "https://qa.leggera.dev/"})
		require.NoError(t, err)
		assert.Equal(t, "https://qa.leggera.dev/0/lg2api/tests/expireCookie.php?user=bob",
			c.URL("expireCookie.php", map[string][]string{"user": {"bob"}}))
	})

	t.Run("build number", func(t *testing.T) {
		c, err := New(Params{DeployURL: "https://qa.leggera.dev", BuildNumber: "153"})
		require.NoError(t, err)
		assert.Equal(t, "https://qa.leggera.dev/153/lg2api/tests/createMockPage.php", c.URL("createMockPage.php", nil))
	})
}

func TestClient_CreateTestUsers(t *testing.T) {
	var last atomic.Value
	srv := newServer(t, map[string]string{
		"/7/lg2api/tests/createTestUsers.php": `{"ok":true,"data":["test_user_1","test_user_2"]}`,
	}, &last)
	c, err := New(Params{DeployURL: srv.URL, BuildNumber: "7"})
	require.NoError(t, err)

	users, err := c.CreateTestUsers(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"test_user_1", "test_user_2"}, users)
	assert.Equal(t, "/7/lg2api/tests/createTestUsers.php?echo=true&users=2", last.Load())

	_, err = c.CreateTestUsers(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requested 3 test users, got 2")

	_, err = c.CreateTestUsers(context.Background(), 0)
	require.Error(t, err)
}

func TestClient_Endpoints(t *testing.T) {
	var last atomic.Value
	srv := newServer(t, map[string]string{
		"/0/lg2api/tests/createMockPage.php": `{"ok":true}`,
		"/0/lg2api/tests/expireCookie.php":   `{"ok":true}`,
		"/0/lg2api/tests/expireTrial.php":    `{"ok":true}`,
	}, &last)
	c, err := New(Params{DeployURL: srv.URL})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.CreateMockPages(ctx, "test_user_1", 3))
	assert.Equal(t, "/0/lg2api/tests/createMockPage.php?pages=3&user=test_user_1", last.Load())

	require.NoError(t, c.CreateMockPages(ctx, "test_user_1", 0))
	assert.Equal(t, "/0/lg2api/tests/createMockPage.php?pages=1&user=test_user_1", last.Load())

	require.NoError(t, c.ExpireCookie(ctx, "test user"))
	assert.Equal(t, "/0/lg2api/tests/expireCookie.php?user=test+user", last.Load())

	require.NoError(t, c.ExpireTrial(ctx, "anon-42"))
	assert.Equal(t, "/0/lg2api/tests/expireTrial.php?user=anon-42", last.Load())
}

func TestClient_Errors(t *testing.T) {
	srv := newServer(t, map[string]string{
		"/0/lg2api/tests/expireCookie.php": `{"ok":false,"error":"no such user"}`,
		"/0/lg2api/tests/expireTrial.php":  `<b>Fatal error</b>`,
	}, nil)
	c, err := New(Params{DeployURL: srv.URL})
	require.NoError(t, err)

	t.Run("ok false", func(t *testing.T) {
		err := c.ExpireCookie(context.Background(), "ghost")
		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "expireCookie.php", apiErr.Endpoint)
		assert.Contains(t, apiErr.Error(), `"error":"no such user"`)
	})

	t.Run("not json", func(t *testing.T) {
		err := c.ExpireTrial(context.Background(), "ghost")
		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "<b>Fatal error</b>", apiErr.Response)
	})

	t.Run("not found", func(t *testing.T) {
		err := c.CreateMockPages(context.Background(), "ghost", 1)
		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := c.ExpireCookie(ctx, "ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
