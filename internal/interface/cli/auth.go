package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"twitchCli/internal/usecase/auth"
)

type authOptions struct {
	force  bool
	verify bool
}

func (r *runner) authCommand() *cobra.Command {
	var opts authOptions

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Twitch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.runAuth(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite existing OAuth token")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check the stored OAuth token with Twitch")
	return cmd
}

func (r *runner) runAuth(ctx context.Context, opts authOptions) error {
	app, err := r.load(ctx)
	if err != nil {
		return err
	}

	if opts.verify {
		return r.verify(ctx, app)
	}

	next, outcome, err := app.Auth.Authenticate(ctx, app.Session, opts.force)
	if err != nil {
		return r.fail(app, err)
	}
	app.Session = next

	switch outcome {
	case auth.OutcomeAlreadyAuthenticated:
		app.Renderer.Println("You are already authenticated.")
	case auth.OutcomeAuthenticated:
		app.Renderer.Println("Authentication complete.")
	case auth.OutcomeCancelled:
		app.Renderer.Println("Authentication cancelled.")
	}
	return nil
}

func (r *runner) verify(ctx context.Context, app *App) error {
	info, err := app.Auth.Verify(ctx, app.Session)
	if err != nil {
		return r.fail(app, err)
	}

	app.Renderer.Println(fmt.Sprintf("Authenticated as %s (user id %s).", info.Login, info.UserID))
	if len(info.Scopes) > 0 {
		app.Renderer.Println("Scopes: " + strings.Join(info.Scopes, ", "))
	}
	if info.ExpiresIn > 0 {
		app.Renderer.Println(fmt.Sprintf("Token expires in %s.", time.Duration(info.ExpiresIn)*time.Second))
	} else {
		app.Renderer.Println("Token does not expire.")
	}
	return nil
}
