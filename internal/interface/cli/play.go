package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"twitchCli/internal/domain"
)

func (r *runner) playCommand() *cobra.Command {
	var quality string

	cmd := &cobra.Command{
		Use:   "play <channel>",
		Short: "Play a livestream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.load(cmd.Context())
			if err != nil {
				return err
			}
			return r.play(cmd.Context(), app, args[0], quality)
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", "", "comma-separated stream qualities")
	return cmd
}

func (r *runner) play(ctx context.Context, app *App, channel, quality string) error {
	err := app.Playback.PlayChannel(ctx, app.Session, channel, quality)
	if errors.Is(err, domain.ErrChannelNotFound) {
		app.Renderer.Println(fmt.Sprintf(`The channel "%s" does not exist`, channel))
		return nil
	}
	if err != nil {
		return r.fail(app, err)
	}
	return nil
}
