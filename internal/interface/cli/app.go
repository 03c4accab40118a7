package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"twitchCli/internal/domain"
	"twitchCli/internal/interface/console"
	"twitchCli/internal/usecase/auth"
)

type Catalog interface {
	LiveStreams(ctx context.Context, session domain.Session, game string) ([]domain.Stream, error)
	ChannelVideos(ctx context.Context, session domain.Session, login string) ([]domain.Video, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, session domain.Session, force bool) (domain.Session, auth.Outcome, error)
	Verify(ctx context.Context, session domain.Session) (domain.TokenInfo, error)
}

type Playback interface {
	PlayChannel(ctx context.Context, session domain.Session, channel, quality string) error
	PlayURL(ctx context.Context, target, quality string) error
}

// App is everything a command needs once configuration has been resolved.
type App struct {
	Session  domain.Session
	Store    domain.SessionRepository
	Catalog  Catalog
	Auth     Authenticator
	Playback Playback
	Renderer *console.Renderer
	Picker   console.Picker
	Fuzzy    console.Picker
	Logger   *zap.Logger
}

type Options struct {
	ConfigPath string
	Verbose    bool
}

type Factory func(ctx context.Context, opts Options) (*App, error)

// ExitError carries the process exit code for a command that already told
// the user what went wrong.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func (a *App) picker(fuzzy bool) console.Picker {
	if fuzzy && a.Fuzzy != nil {
		return a.Fuzzy
	}
	return a.Picker
}
