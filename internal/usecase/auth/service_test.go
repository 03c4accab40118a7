package auth

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitchCli/internal/domain"
)

const authURL = "https://id.twitch.tv/oauth2/authorize?client_id=abc&response_type=token"

type fakeURLs struct{}

func (fakeURLs) AuthorizationURL() string { return authURL }

type fakeBrowser struct {
	opened []string
	err    error
}

func (b *fakeBrowser) Open(rawURL string) error {
	b.opened = append(b.opened, rawURL)
	return b.err
}

type fakePrompter struct {
	line   string
	err    error
	labels []string
}

func (p *fakePrompter) PromptLine(_ context.Context, label string) (string, error) {
	p.labels = append(p.labels, label)
	return p.line, p.err
}

type memoryStore struct {
	saved []domain.Session
	err   error
}

func (m *memoryStore) Load(context.Context) (domain.Session, error) {
	if len(m.saved) == 0 {
		return domain.Session{}, nil
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *memoryStore) Save(_ context.Context, s domain.Session) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, s)
	return nil
}

type fakeValidator struct {
	info  domain.TokenInfo
	err   error
	calls []string
}

func (v *fakeValidator) Validate(_ context.Context, token string) (domain.TokenInfo, error) {
	v.calls = append(v.calls, token)
	return v.info, v.err
}

type fixture struct {
	browser   *fakeBrowser
	prompter  *fakePrompter
	store     *memoryStore
	validator *fakeValidator
	out       *bytes.Buffer
	svc       *Service
}

func newFixture(line string) *fixture {
	f := &fixture{
		browser:   &fakeBrowser{},
		prompter:  &fakePrompter{line: line},
		store:     &memoryStore{},
		validator: &fakeValidator{},
		out:       &bytes.Buffer{},
	}
	f.svc = NewService(Deps{
		URLs:      fakeURLs{},
		Validator: f.validator,
		Browser:   f.browser,
		Prompter:  f.prompter,
		Store:     f.store,
		Out:       f.out,
	})
	return f
}

func TestAuthenticate_AlreadyAuthenticated(t *testing.T) {
	f := newFixture("new_token")
	current := domain.Session{ClientID: "abc", OAuthToken: "old_token"}

	got, outcome, err := f.svc.Authenticate(context.Background(), current, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyAuthenticated, outcome)
	assert.Equal(t, current, got)
	assert.Empty(t, f.browser.opened)
	assert.Empty(t, f.prompter.labels)
	assert.Empty(t, f.store.saved)
}

func TestAuthenticate_StoresPastedToken(t *testing.T) {
	f := newFixture("  fresh_token \n")

	got, outcome, err := f.svc.Authenticate(context.Background(), domain.Session{ClientID: "abc"}, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAuthenticated, outcome)
	assert.Equal(t, domain.Session{ClientID: "abc", OAuthToken: "fresh_token"}, got)
	assert.Equal(t, []string{authURL}, f.browser.opened)
	assert.Equal(t, []string{tokenPrompt}, f.prompter.labels)
	require.Len(t, f.store.saved, 1)
	assert.Equal(t, got, f.store.saved[0])
	assert.Empty(t, f.out.String())
}

func TestAuthenticate_ForceReplacesToken(t *testing.T) {
	f := newFixture("fresh_token")
	current := domain.Session{ClientID: "abc", OAuthToken: "old_token"}

	got, outcome, err := f.svc.Authenticate(context.Background(), current, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAuthenticated, outcome)
	assert.Equal(t, "fresh_token", got.OAuthToken)
	assert.Len(t, f.browser.opened, 1)
}

func TestAuthenticate_EmptyTokenCancels(t *testing.T) {
	f := newFixture("   ")
	current := domain.Session{ClientID: "abc", OAuthToken: "old_token"}

	got, outcome, err := f.svc.Authenticate(context.Background(), current, true)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Equal(t, current, got)
	assert.Empty(t, f.store.saved)
}

func TestAuthenticate_BrowserFailureStillPrompts(t *testing.T) {
	f := newFixture("fresh_token")
	f.browser.err = errors.New("no display")

	_, outcome, err := f.svc.Authenticate(context.Background(), domain.Session{ClientID: "abc"}, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAuthenticated, outcome)
	assert.Equal(t, browserFailedMessage+"\n"+authURL+"\n", f.out.String())
	assert.Equal(t, []string{tokenPrompt}, f.prompter.labels)
}

func TestAuthenticate_PromptError(t *testing.T) {
	f := newFixture("")
	f.prompter.err = context.Canceled

	_, outcome, err := f.svc.Authenticate(context.Background(), domain.Session{ClientID: "abc"}, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Empty(t, f.store.saved)
}

func TestAuthenticate_SaveError(t *testing.T) {
	f := newFixture("fresh_token")
	f.store.err = errors.New("read-only filesystem")
	current := domain.Session{ClientID: "abc"}

	got, _, err := f.svc.Authenticate(context.Background(), current, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only filesystem")
	assert.Equal(t, current, got)
}

func TestVerify(t *testing.T) {
	f := newFixture("")
	f.validator.info = domain.TokenInfo{ClientID: "abc", Login: "viewer", UserID: "1", ExpiresIn: 3600}

	info, err := f.svc.Verify(context.Background(), domain.Session{ClientID: "abc", OAuthToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "viewer", info.Login)
	assert.Equal(t, []string{"tok"}, f.validator.calls)
}

func TestVerify_Errors(t *testing.T) {
	f := newFixture("")

	_, err := f.svc.Verify(context.Background(), domain.Session{ClientID: "abc"})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, f.validator.calls)

	f.validator.err = domain.ErrTokenExpired
	_, err = f.svc.Verify(context.Background(), domain.Session{ClientID: "abc", OAuthToken: "tok"})
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "authenticated", OutcomeAuthenticated.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}

func TestAuthenticate_AnyStoredTokenCountsAsAuthenticated(t *testing.T) {
	f := newFixture("fresh_token")
	current := domain.Session{ClientID: "abc", OAuthToken: "  "}

	_, outcome, err := f.svc.Authenticate(context.Background(), current, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyAuthenticated, outcome)
	assert.Empty(t, f.browser.opened)
}
