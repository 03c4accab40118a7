package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"twitchCli/internal/domain"
)

const (
	msgMissingToken = "You have to provide a Twitch OAuth token to list followed streams."
	msgTokenExpired = "OAuth Token has expired.  Please run 'auth --force' to generate a new one."
	msgFetchFailed  = "Something went wrong while trying to fetch data from the Twitch API"
	msgNoneLive     = "No followed streamers are live."
)

const exitInterrupted = 130

// fail reports err to the user and turns it into an exit code. Errors that
// end a command successfully, such as an unknown channel, are handled by the
// commands before reaching here.
func (r *runner) fail(app *App, err error) error {
	app.Logger.Debug("command failed", zap.Error(err))

	var (
		respErr *domain.ResponseError
		urlErr  *url.Error
	)

	switch {
	case errors.Is(err, context.Canceled):
		return &ExitError{Code: exitInterrupted, Err: err}
	case errors.Is(err, domain.ErrNotAuthenticated):
		r.missingToken(app)
	case errors.Is(err, domain.ErrTokenExpired):
		app.Renderer.Println(msgTokenExpired)
	case errors.As(err, &respErr):
		app.Renderer.Println(respErr.Body)
		app.Renderer.Println(msgFetchFailed)
	case errors.Is(err, domain.ErrMalformedResponse), errors.As(err, &urlErr):
		app.Renderer.Println(msgFetchFailed)
	case errors.Is(err, domain.ErrNoFollows), errors.Is(err, domain.ErrNoLiveStreams):
		app.Renderer.Println(msgNoneLive)
	default:
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
	}

	return &ExitError{Code: 1, Err: err}
}

func (r *runner) missingToken(app *App) {
	app.Renderer.Println(msgMissingToken)
	app.Renderer.Println(fmt.Sprintf(`Run "%s auth" to authenticate.`, r.programName))
}
