package browser

import (
	"fmt"
	"io"

	"github.com/pkg/browser"

	"twitchCli/internal/domain"
)

// Launcher opens URLs with the platform's default browser.
type Launcher struct {
	open func(string) error
}

func NewLauncher() *Launcher {
	// Keep the opener quiet while the token prompt is up.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	return &Launcher{open: browser.OpenURL}
}

func (l *Launcher) Open(rawURL string) error {
	if err := l.open(rawURL); err != nil {
		return fmt.Errorf("browser: open: %w", err)
	}
	return nil
}

var _ domain.BrowserLauncher = (*Launcher)(nil)
