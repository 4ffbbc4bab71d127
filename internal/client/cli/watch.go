package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/bizkeeper/internal/client/transport"
	"github.com/iudanet/bizkeeper/internal/models"
)

// NewWatchCommand создает команду watch
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stay connected and print changes as they arrive",
		Long: `Keep the node running: maintain the authority connection according to
network preferences, run periodic autosync and print every collection change
and notice until interrupted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withCli(rootOpts, func(ctx context.Context, c *Cli) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runWatch(ctx)
		}),
	}
}

func (c *Cli) runWatch(ctx context.Context) error {
	unsubscribeChanges := c.node.Changes.Subscribe(c.printChange)
	defer unsubscribeChanges()

	unsubscribeStates := c.node.Transport.Subscribe(func(s transport.State) {
		c.io.Println(labelStyle.Render(fmt.Sprintf("%s transport %s", timestamp(), s)))
	})
	defer unsubscribeStates()

	prefs := c.node.Network.Preferences()
	c.io.Println(titleStyle.Render(fmt.Sprintf("Watching (mode %s), press Ctrl+C to stop", prefs.Mode)))

	return c.node.Run(ctx)
}

func (c *Cli) printChange(ev models.ChangeEvent) {
	line := fmt.Sprintf("%s %s %s: %d record(s)", timestamp(), ev.Origin, ev.Collection, len(ev.Records))
	if ev.Action != "" && ev.Item != nil {
		line += fmt.Sprintf(" (%s %s)", ev.Action, ev.Item.ID())
	}

	switch ev.Origin {
	case models.OriginUpdated:
		c.io.Println(warnStyle.Render(line))
	case models.OriginSynced:
		c.io.Println(successStyle.Render(line))
	default:
		c.io.Println(line)
	}
}

func timestamp() string {
	return time.Now().Format(time.TimeOnly)
}
