package player

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamlink_CommandArgs(t *testing.T) {
	p := NewStreamlink("", nil)

	cmd := p.command(context.Background(), "twitch.tv/bob", "720p,480p")
	assert.Equal(t, []string{DefaultBinary, "twitch.tv/bob", "720p,480p"}, cmd.Args)

	cmd = p.command(context.Background(), "twitch.tv/bob", "  ")
	assert.Equal(t, []string{DefaultBinary, "twitch.tv/bob"}, cmd.Args)
}

func TestStreamlink_PlayPassesOutputThrough(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX echo")
	}
	echo, err := exec.LookPath("echo")
	if err != nil {
		t.Skip("echo not available")
	}

	var out bytes.Buffer
	p := NewStreamlink(echo, nil)
	p.stdout = &out

	require.NoError(t, p.Play(context.Background(), "twitch.tv/alice", "best"))
	assert.Equal(t, "twitch.tv/alice best\n", out.String())
}

func TestStreamlink_PlayFailure(t *testing.T) {
	p := NewStreamlink("definitely-not-a-player-binary", nil)

	err := p.Play(context.Background(), "twitch.tv/alice", "")
	assert.Error(t, err)
}

func TestStreamlink_NonZeroExitIsNotAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX false")
	}
	bin, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}

	p := NewStreamlink(bin, nil)
	assert.NoError(t, p.Play(context.Background(), "twitch.tv/alice", "720p"))
}

func TestStreamlink_InterruptedPlayback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX sleep")
	}
	bin, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewStreamlink(bin, nil)
	err = p.Play(ctx, "5", "")
	assert.ErrorIs(t, err, context.Canceled)
}
