package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tunjipaul/folio/pkg/client"
	"github.com/tunjipaul/folio/pkg/session"
)

// Run starts the dashboard and blocks until it exits. Forced logouts from
// the client and changes to the session file both return it to login.
// storage may be nil, in which case the file is not watched.
func Run(ctx context.Context, c *client.Client, storage *session.FileStorage, opts Options, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewApp(c, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	c.SetLogoutHook(func() {
		p.Send(sessionEndedMsg{})
	})
	defer c.SetLogoutHook(nil)

	if storage != nil {
		go func() {
			err := session.Watch(ctx, storage, func(r session.Record) {
				p.Send(sessionChangedMsg{record: r})
			}, func(err error) {
				log.Warn().Err(err).Msg("session watch error")
			})
			if err != nil {
				log.Warn().Err(err).Msg("session watch stopped")
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
