package domain

import (
	"context"
	"net/url"
)

// SessionRepository persists the viewer's session between runs.
type SessionRepository interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, session Session) error
}

// APIGateway issues authenticated Helix calls. path is relative to the Helix
// base URL.
type APIGateway interface {
	Request(ctx context.Context, session Session, method, path string, query url.Values, body any) (Document, error)
}

type AuthorizationURLBuilder interface {
	AuthorizationURL() string
}

type TokenValidator interface {
	Validate(ctx context.Context, token string) (TokenInfo, error)
}

type BrowserLauncher interface {
	Open(rawURL string) error
}

// Prompter reads one line of interactive input after printing label.
type Prompter interface {
	PromptLine(ctx context.Context, label string) (string, error)
}

// Player resolves and plays target, blocking until the player exits.
type Player interface {
	Play(ctx context.Context, target, quality string) error
}
