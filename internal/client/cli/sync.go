package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewSyncCommand создает команду sync
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "sync",
		Short:        "Pull full snapshots from the authority",
		Long:         "Pull full snapshots of every collection from the authority and overwrite local copies.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: withCli(rootOpts, func(ctx context.Context, c *Cli) error {
			c.io.Println("Synchronizing...")

			res := c.node.Sync.SyncNow(ctx)
			if !res.OK {
				c.io.Println(errorStyle.Render("✗ " + res.Error))
				return fmt.Errorf("sync failed")
			}

			c.io.Println(successStyle.Render("✓ Synchronization completed"))
			return nil
		}),
	}
}
