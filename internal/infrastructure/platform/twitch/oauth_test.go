package twitchinfra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitchCli/internal/domain"
)

// redirectTransport sends every request to target, keeping path and query.
type redirectTransport struct {
	target *url.URL
}

func (rt redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = rt.target.Scheme
	clone.URL.Host = rt.target.Host
	clone.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func newValidateServer(t *testing.T, handler http.HandlerFunc) *http.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return &http.Client{Transport: redirectTransport{target: target}}
}

func TestOAuthClient_AuthorizationURL(t *testing.T) {
	c, err := NewOAuthClient("test_client", "", nil)
	require.NoError(t, err)

	raw := c.AuthorizationURL()
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "id.twitch.tv", u.Host)
	assert.Equal(t, "/oauth2/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "token", q.Get("response_type"))
	assert.Equal(t, "test_client", q.Get("client_id"))
	assert.Equal(t, DefaultRedirectURI, q.Get("redirect_uri"))
	assert.Equal(t, ScopeEditFollows, q.Get("scope"))
	assert.NotEmpty(t, q.Get("state"))

	assert.NotEqual(t, q.Get("state"), mustQuery(t, c.AuthorizationURL()).Get("state"))
}

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}

func TestOAuthClient_ValidateValidToken(t *testing.T) {
	httpCli := newValidateServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/validate", r.URL.Path)
		assert.Contains(t, r.Header.Get("Authorization"), "good_token")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"client_id": "test_client", "login": "alice", "scopes": ["user:edit:follows"], "user_id": "10", "expires_in": 5000}`))
	})

	c, err := NewOAuthClient("test_client", "", httpCli)
	require.NoError(t, err)

	info, err := c.Validate(context.Background(), " good_token ")
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Login)
	assert.Equal(t, "10", info.UserID)
	assert.Equal(t, 5000, info.ExpiresIn)
	assert.Equal(t, []string{"user:edit:follows"}, info.Scopes)
}

func TestOAuthClient_ValidateRejectedToken(t *testing.T) {
	httpCli := newValidateServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": 401, "message": "invalid access token"}`))
	})

	c, err := NewOAuthClient("test_client", "", httpCli)
	require.NoError(t, err)

	_, err = c.Validate(context.Background(), "stale")
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestOAuthClient_ValidateEmptyToken(t *testing.T) {
	c, err := NewOAuthClient("test_client", "", nil)
	require.NoError(t, err)

	_, err = c.Validate(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}
