package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/bizkeeper/internal/client/auth"
)

// PasswordEnv переменная окружения с паролем для неинтерактивного входа
const PasswordEnv = "BIZKEEPER_PASSWORD"

// LoginOptions флаги команды login
type LoginOptions struct {
	*RootOptions
	Username     string
	PasswordFile string
}

// NewLoginCommand создает команду login
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the authority",
		Long: `Authenticate against the authority configured in network preferences.

Password sources (highest to lowest priority):
  1. BIZKEEPER_PASSWORD environment variable
  2. --password-file
  3. Interactive prompt`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: withCli(rootOpts, func(ctx context.Context, c *Cli) error {
			return c.runLogin(ctx, opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "username (prompted when empty)")
	cmd.Flags().StringVar(&opts.PasswordFile, "password-file", "", "path to file containing password")

	return cmd
}

func (c *Cli) runLogin(ctx context.Context, opts *LoginOptions) error {
	if c.node.Network.BaseURL() == "" {
		return fmt.Errorf("authority is not configured: run 'bizkeeper prefs set mode client' and 'bizkeeper prefs set serverAddress <host>'")
	}

	username := opts.Username
	if username == "" {
		var err error
		if username, err = c.io.ReadInput("Username: "); err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, err := c.readPassword(opts.PasswordFile)
	if err != nil {
		return err
	}

	session, err := c.node.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println(successStyle.Render("✓ Login successful"))
	c.io.Println(field("Username", session.Username))
	c.io.Println(field("Token expires", session.ExpiresAt.Format(time.RFC3339)))
	return nil
}

// readPassword получает пароль из окружения, файла или интерактивно
func (c *Cli) readPassword(passwordFile string) (string, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if passwordFile != "" {
		content, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// NewLogoutCommand создает команду logout
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "logout",
		Short:        "Forget the local session",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: withCli(rootOpts, func(ctx context.Context, c *Cli) error {
			if err := c.node.Auth.Logout(ctx); err != nil {
				return err
			}
			c.io.Println(successStyle.Render("✓ Logged out"))
			return nil
		}),
	}
}

// NewStatusCommand создает команду status
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "status",
		Short:        "Show session and network status",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: withCli(rootOpts, func(ctx context.Context, c *Cli) error {
			return c.runStatus(ctx)
		}),
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println(titleStyle.Render("Session"))

	session, err := c.node.Auth.Status(ctx)
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		c.io.Println(field("Status", "not authenticated"))
	case err != nil:
		return err
	default:
		c.io.Println(field("Username", session.Username))
		expires := session.ExpiresAt.Format(time.RFC3339)
		if session.Expired {
			expires = warnStyle.Render(expires + " (expired, refreshed on next request)")
		}
		c.io.Println(field("Token expires", expires))
	}

	c.io.Println()
	c.printPreferences()
	return nil
}
