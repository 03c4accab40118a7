package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"twitchCli/internal/domain"
)

const (
	titleLive    = "Streams online now"
	promptStream = "Stream ID: "
)

type liveOptions struct {
	flat    bool
	game    string
	quality string
	fuzzy   bool
}

func (r *runner) liveCommand() *cobra.Command {
	var opts liveOptions

	cmd := &cobra.Command{
		Use:   "live",
		Short: "List live channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.runLive(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.flat, "flat", false, "don't show detailed information or prompt")
	cmd.Flags().StringVar(&opts.game, "game", "", "show live streams for a specific game")
	cmd.Flags().StringVarP(&opts.quality, "quality", "q", "", "comma-separated stream qualities")
	cmd.Flags().BoolVar(&opts.fuzzy, "fuzzy", false, "pick the stream with an interactive fuzzy finder")
	return cmd
}

func (r *runner) runLive(ctx context.Context, opts liveOptions) error {
	app, err := r.load(ctx)
	if err != nil {
		return err
	}

	if !app.Session.Authenticated() {
		r.missingToken(app)
		return &ExitError{Code: 1, Err: domain.ErrNotAuthenticated}
	}

	streams, err := app.Catalog.LiveStreams(ctx, app.Session, opts.game)
	if err != nil {
		return r.fail(app, err)
	}

	app.Renderer.Streams(titleLive, streams, opts.flat)
	if opts.flat {
		return nil
	}

	idx, ok, err := app.picker(opts.fuzzy).Pick(ctx, promptStream, len(streams), func(i int) string {
		s := streams[i]
		return fmt.Sprintf("%s: %s - %s", s.UserName, s.GameName, s.Title)
	})
	if err != nil {
		return r.fail(app, err)
	}
	if !ok {
		return nil
	}

	return r.play(ctx, app, streams[idx].Channel(), opts.quality)
}
