package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"twitchCli/internal/domain"
)

const promptVOD = "VOD ID: "

type vodsOptions struct {
	flat    bool
	quality string
	fuzzy   bool
}

func (r *runner) vodsCommand() *cobra.Command {
	var opts vodsOptions

	cmd := &cobra.Command{
		Use:   "vods <channel>",
		Short: "List past streams of a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runVods(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.flat, "flat", false, "only print the VOD URLs")
	cmd.Flags().StringVarP(&opts.quality, "quality", "q", "", "comma-separated stream qualities")
	cmd.Flags().BoolVar(&opts.fuzzy, "fuzzy", false, "pick the VOD with an interactive fuzzy finder")
	return cmd
}

func (r *runner) runVods(ctx context.Context, channel string, opts vodsOptions) error {
	app, err := r.load(ctx)
	if err != nil {
		return err
	}

	videos, err := app.Catalog.ChannelVideos(ctx, app.Session, channel)
	if errors.Is(err, domain.ErrChannelNotFound) {
		app.Renderer.Println(fmt.Sprintf(`The channel "%s" does not exist`, channel))
		return nil
	}
	if err != nil {
		return r.fail(app, err)
	}

	if len(videos) == 0 {
		app.Renderer.Println("No recent VODs for " + channel)
		return nil
	}

	app.Renderer.Videos(channel+"'s recent VODs", videos, opts.flat)
	if opts.flat {
		return nil
	}

	idx, ok, err := app.picker(opts.fuzzy).Pick(ctx, promptVOD, len(videos), func(i int) string {
		v := videos[i]
		return fmt.Sprintf("%s (%s, %s)", v.Title, v.CreatedAt, v.Duration)
	})
	if err != nil {
		return r.fail(app, err)
	}
	if !ok {
		return nil
	}

	if err := app.Playback.PlayURL(ctx, videos[idx].URL, opts.quality); err != nil {
		return r.fail(app, err)
	}
	return nil
}
