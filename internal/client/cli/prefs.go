package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/bizkeeper/internal/client/network"
	"github.com/iudanet/bizkeeper/internal/models"
)

// NewPrefsCommand создает группу команд prefs
func NewPrefsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change network preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:          "show",
		Short:        "Show network preferences",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: withCli(rootOpts, func(ctx context.Context, c *Cli) error {
			c.printPreferences()
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one network preference",
		Long: `Change one network preference. The change is persisted immediately.

Keys:
  mode           standalone | server | client
  serverAddress  authority host or URL
  serverPort     authority port (1-65535)
  autoSync       true | false
  syncInterval   duration, e.g. 5m`,
		Example: `  bizkeeper prefs set mode client
  bizkeeper prefs set serverAddress 192.168.1.10
  bizkeeper prefs set syncInterval 2m`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCli(rootOpts, func(ctx context.Context, c *Cli) error {
				if err := c.node.Network.UpdatePreference(ctx, args[0], args[1]); err != nil {
					return err
				}
				c.io.Println(successStyle.Render(fmt.Sprintf("✓ %s updated", args[0])))
				return nil
			})(cmd, args)
		},
	})

	return cmd
}

func (c *Cli) printPreferences() {
	prefs := c.node.Network.Preferences()

	c.io.Println(titleStyle.Render("Network"))
	c.io.Println(field(network.KeyMode, string(prefs.Mode)))
	if prefs.Mode == models.ModeClient {
		address := prefs.ServerAddress
		if address == "" {
			address = warnStyle.Render("(not set)")
		}
		c.io.Println(field(network.KeyServerAddress, address))
		c.io.Println(field(network.KeyServerPort, strconv.Itoa(prefs.ServerPort)))
		c.io.Println(field("connection", string(prefs.ConnectionStatus)))
	}
	c.io.Println(field(network.KeyAutoSync, strconv.FormatBool(prefs.AutoSync)))
	c.io.Println(field(network.KeySyncInterval, prefs.SyncInterval.String()))

	lastSync := "never"
	if prefs.LastSync != nil {
		lastSync = prefs.LastSync.Format(time.RFC3339)
	}
	c.io.Println(field("lastSync", lastSync))
}

// NewTestConnectionCommand создает команду test-connection
func NewTestConnectionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "test-connection <address> <port>",
		Short:        "Probe an authority without changing preferences",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := strconv.Atoi(args[1])
			if err != nil || port < 1 || port > 65535 {
				return fmt.Errorf("invalid port %q", args[1])
			}

			return withCli(rootOpts, func(ctx context.Context, c *Cli) error {
				res := c.node.Sync.TestConnection(ctx, args[0], port)
				if !res.OK {
					c.io.Println(errorStyle.Render("✗ " + res.Error))
					return fmt.Errorf("connection test failed")
				}
				c.io.Println(successStyle.Render("✓ Authority is reachable"))
				return nil
			})(cmd, args)
		},
	}
}
