// Package cli команды процесса authority.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/bizkeeper/internal/client/iocli"
	"github.com/iudanet/bizkeeper/internal/config"
	"github.com/iudanet/bizkeeper/internal/logging"
	"github.com/iudanet/bizkeeper/internal/server"
	"github.com/iudanet/bizkeeper/internal/server/accounts"
	"github.com/iudanet/bizkeeper/internal/server/storage/sqlite"
)

// PasswordEnv пароль для неинтерактивного user add / user passwd
const PasswordEnv = "BIZKEEPER_PASSWORD"

// RootOptions глобальные флаги authority
type RootOptions struct {
	IO         iocli.IO
	ConfigPath string
	DBPath     string
	Verbose    bool
}

// NewRootCommand создает корневую команду authority
func NewRootCommand(version string, io iocli.IO) *cobra.Command {
	opts := &RootOptions{IO: io}

	cmd := &cobra.Command{
		Use:     "bizkeeper-server",
		Short:   "BizKeeper authority",
		Long:    "Server of record for BizKeeper clients: HTTP API and duplex synchronization channel.",
		Version: version,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (.toml or .yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to database (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewServeCommand(opts, version))
	cmd.AddCommand(NewUserCommand(opts))

	return cmd
}

// load читает конфигурацию и применяет глобальные флаги
func (o *RootOptions) load() (config.Server, error) {
	cfg, err := config.LoadServer(o.ConfigPath)
	if err != nil {
		return config.Server{}, err
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// NewServeCommand запускает authority
func NewServeCommand(opts *RootOptions, version string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the authority",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, cfg, version, logger)
			if err != nil {
				return err
			}
			defer func() { _ = srv.Close() }()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}

// NewUserCommand управление учетными записями
func NewUserCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:          "add <username>",
		Short:        "Create a user account",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: withAccounts(opts, func(ctx context.Context, svc *accounts.Service, username string) error {
			password, err := readNewPassword(opts.IO)
			if err != nil {
				return err
			}

			user, err := svc.Create(ctx, username, password)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			opts.IO.Printf("User %s created (id %s)\n", user.Username, user.ID)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "passwd <username>",
		Short:        "Change a user password",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: withAccounts(opts, func(ctx context.Context, svc *accounts.Service, username string) error {
			password, err := readNewPassword(opts.IO)
			if err != nil {
				return err
			}

			if err := svc.SetPassword(ctx, username, password); err != nil {
				return fmt.Errorf("failed to change password: %w", err)
			}

			opts.IO.Printf("Password for %s changed\n", username)
			return nil
		}),
	})

	return cmd
}

// withAccounts открывает хранилище без запуска сервера
func withAccounts(opts *RootOptions, fn func(ctx context.Context, svc *accounts.Service, username string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := opts.load()
		if err != nil {
			return err
		}

		logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		if err != nil {
			return err
		}

		st, err := sqlite.New(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer func() { _ = st.Close() }()

		return fn(ctx, accounts.NewService(st, logger), args[0])
	}
}

// readNewPassword берет пароль из BIZKEEPER_PASSWORD или спрашивает дважды
func readNewPassword(io iocli.IO) (string, error) {
	if env := os.Getenv(PasswordEnv); env != "" {
		return env, nil
	}

	password, err := io.ReadPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := io.ReadPassword("Repeat password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return strings.TrimSpace(password), nil
}
