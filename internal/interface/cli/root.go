package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runner struct {
	programName string
	factory     Factory
	opts        Options
	stderr      io.Writer
	app         *App
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, programName string, factory Factory, args []string, stdout, stderr io.Writer) int {
	r := &runner{
		programName: programName,
		factory:     factory,
		stderr:      stderr,
	}

	if args == nil {
		args = []string{}
	}

	root := r.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	r.close()

	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", programName)
	return 2
}

func (r *runner) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           r.programName,
		Short:         "List and play followed Twitch streams and VODs",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.runLive(cmd.Context(), liveOptions{})
		},
	}

	root.PersistentFlags().StringVar(&r.opts.ConfigPath, "config", "", "path of the session file (.yaml, .json or .db)")
	root.PersistentFlags().BoolVarP(&r.opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(
		r.liveCommand(),
		r.vodsCommand(),
		r.playCommand(),
		r.authCommand(),
	)
	return root
}

// load builds the App on first use.
func (r *runner) load(ctx context.Context) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}

	app, err := r.factory(ctx, r.opts)
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %v\n", err)
		return nil, &ExitError{Code: 1, Err: err}
	}
	if app.Logger == nil {
		app.Logger = zap.NewNop()
	}

	r.app = app
	return app, nil
}

func (r *runner) close() {
	if r.app == nil {
		return
	}
	if c, ok := r.app.Store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			r.app.Logger.Warn("closing session store", zap.Error(err))
		}
	}
	_ = r.app.Logger.Sync()
}
