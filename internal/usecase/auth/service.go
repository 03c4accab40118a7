package auth

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"twitchCli/internal/domain"
)

type Outcome int

const (
	OutcomeAlreadyAuthenticated Outcome = iota
	OutcomeCancelled
	OutcomeAuthenticated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyAuthenticated:
		return "already_authenticated"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

const (
	browserFailedMessage = "Couldn't open a browser. Open this URL in your browser to continue:"
	tokenPrompt          = "OAuth token: "
)

// Service runs the implicit-grant flow: the viewer authorizes in a browser,
// copies the token shown on the redirect page and pastes it back.
type Service struct {
	urls      domain.AuthorizationURLBuilder
	validator domain.TokenValidator
	browser   domain.BrowserLauncher
	prompter  domain.Prompter
	store     domain.SessionRepository
	out       io.Writer
	logger    *zap.Logger
}

type Deps struct {
	URLs      domain.AuthorizationURLBuilder
	Validator domain.TokenValidator
	Browser   domain.BrowserLauncher
	Prompter  domain.Prompter
	Store     domain.SessionRepository
	Out       io.Writer
	Logger    *zap.Logger
}

func NewService(d Deps) *Service {
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Service{
		urls:      d.URLs,
		validator: d.Validator,
		browser:   d.Browser,
		prompter:  d.Prompter,
		store:     d.Store,
		out:       d.Out,
		logger:    d.Logger,
	}
}

// Authenticate returns the session to use from now on. It is the given one
// unless the outcome is OutcomeAuthenticated, in which case the new session
// has already been saved.
func (s *Service) Authenticate(ctx context.Context, session domain.Session, force bool) (domain.Session, Outcome, error) {
	if session.Authenticated() && !force {
		return session, OutcomeAlreadyAuthenticated, nil
	}

	authURL := s.urls.AuthorizationURL()
	if err := s.browser.Open(authURL); err != nil {
		s.logger.Debug("browser launch failed", zap.Error(err))
		fmt.Fprintln(s.out, browserFailedMessage)
		fmt.Fprintln(s.out, authURL)
	}

	line, err := s.prompter.PromptLine(ctx, tokenPrompt)
	if err != nil {
		return session, OutcomeCancelled, fmt.Errorf("auth: reading token: %w", err)
	}

	token := strings.TrimSpace(line)
	if token == "" {
		return session, OutcomeCancelled, nil
	}

	next := session.WithToken(token)
	if err := s.store.Save(ctx, next); err != nil {
		return session, OutcomeCancelled, fmt.Errorf("auth: saving session: %w", err)
	}

	s.logger.Debug("session saved")
	return next, OutcomeAuthenticated, nil
}

// Verify asks Twitch who the stored token belongs to.
func (s *Service) Verify(ctx context.Context, session domain.Session) (domain.TokenInfo, error) {
	if !session.Authenticated() {
		return domain.TokenInfo{}, domain.ErrNotAuthenticated
	}

	info, err := s.validator.Validate(ctx, session.OAuthToken)
	if err != nil {
		return domain.TokenInfo{}, err
	}
	if info.ClientID != "" && session.ClientID != "" && info.ClientID != session.ClientID {
		s.logger.Warn("token was issued to a different client",
			zap.String("token_client_id", info.ClientID),
			zap.String("client_id", session.ClientID),
		)
	}
	return info, nil
}
