package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"twitchCli/internal/domain"
)

const DefaultBinary = "streamlink"

// Streamlink runs the player with the terminal attached; nothing it prints is
// captured. A non-zero exit is the player's own report and not an error here.
type Streamlink struct {
	binary string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

func NewStreamlink(binary string, logger *zap.Logger) *Streamlink {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Streamlink{
		binary: binary,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
	}
}

func (p *Streamlink) Play(ctx context.Context, target, quality string) error {
	cmd := p.command(ctx, target, quality)

	p.logger.Debug("launching player", zap.Strings("args", cmd.Args))

	err := cmd.Run()
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		return ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		p.logger.Debug("player exited",
			zap.String("target", target),
			zap.Int("exit_code", exitErr.ExitCode()),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("player: %s %s: %w", p.binary, target, err)
	}
	return nil
}

func (p *Streamlink) command(ctx context.Context, target, quality string) *exec.Cmd {
	args := []string{target}
	if q := strings.TrimSpace(quality); q != "" {
		args = append(args, q)
	}

	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdin = p.stdin
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr
	return cmd
}

var _ domain.Player = (*Streamlink)(nil)
