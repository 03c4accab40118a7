package twitchinfra

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nicklaw5/helix/v2"

	"twitchCli/internal/domain"
)

const (
	DefaultRedirectURI = "https://butt4cak3.github.io/twitch-cli/oauth.html"
	ScopeEditFollows   = "user:edit:follows"
)

// OAuthClient covers the id.twitch.tv side: the implicit-grant authorization
// URL and token validation.
type OAuthClient struct {
	client *helix.Client
	scopes []string
}

func NewOAuthClient(clientID, redirectURI string, httpCli *http.Client) (*OAuthClient, error) {
	if strings.TrimSpace(redirectURI) == "" {
		redirectURI = DefaultRedirectURI
	}

	opts := &helix.Options{
		ClientID:    clientID,
		RedirectURI: redirectURI,
	}
	if httpCli != nil {
		opts.HTTPClient = httpCli
	}

	client, err := helix.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("helix: NewClient: %w", err)
	}

	return &OAuthClient{
		client: client,
		scopes: []string{ScopeEditFollows},
	}, nil
}

// AuthorizationURL returns an implicit-grant URL; the token comes back in the
// redirect's fragment.
func (c *OAuthClient) AuthorizationURL() string {
	return c.client.GetAuthorizationURL(&helix.AuthorizationURLParams{
		ResponseType: "token",
		Scopes:       c.scopes,
		State:        uuid.NewString(),
	})
}

func (c *OAuthClient) Validate(ctx context.Context, token string) (domain.TokenInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.TokenInfo{}, err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.TokenInfo{}, domain.ErrNotAuthenticated
	}

	valid, resp, err := c.client.ValidateToken(token)
	if err != nil {
		return domain.TokenInfo{}, fmt.Errorf("helix: ValidateToken: %w", err)
	}
	if !valid || resp == nil {
		return domain.TokenInfo{}, fmt.Errorf("helix: ValidateToken: %w", domain.ErrTokenExpired)
	}

	return domain.TokenInfo{
		ClientID:  resp.Data.ClientID,
		Login:     resp.Data.Login,
		UserID:    resp.Data.UserID,
		Scopes:    resp.Data.Scopes,
		ExpiresIn: resp.Data.ExpiresIn,
	}, nil
}

var (
	_ domain.AuthorizationURLBuilder = (*OAuthClient)(nil)
	_ domain.TokenValidator          = (*OAuthClient)(nil)
)
