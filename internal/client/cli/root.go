package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/bizkeeper/internal/client/iocli"
	"github.com/iudanet/bizkeeper/internal/client/node"
	"github.com/iudanet/bizkeeper/internal/config"
	"github.com/iudanet/bizkeeper/internal/logging"
	"github.com/iudanet/bizkeeper/internal/models"
)

// RootOptions глобальные флаги клиента
type RootOptions struct {
	IO         iocli.IO
	ConfigPath string
	DBPath     string
	LogFormat  string
	Verbose    bool

	// nodeOptions переопределяют компоненты узла (тесты)
	nodeOptions []node.Option
}

// NewRootCommand создает корневую команду клиента
func NewRootCommand(version string, io iocli.IO) *cobra.Command {
	opts := &RootOptions{IO: io}

	cmd := &cobra.Command{
		Use:     "bizkeeper",
		Short:   "BizKeeper client",
		Long:    "Local-first business records with optional synchronization against a BizKeeper authority.",
		Version: version,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (.toml or .yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to local database (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewPrefsCommand(opts))
	cmd.AddCommand(NewTestConnectionCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// Cli открытый клиентский узел и вывод команды
type Cli struct {
	node *node.Node
	io   iocli.IO
}

// open загружает конфигурацию и собирает узел
func (o *RootOptions) open(ctx context.Context) (*Cli, error) {
	cfg, err := config.LoadClient(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	} else if cfg.LogLevel == "info" {
		// разовые команды выводят только предупреждения
		cfg.LogLevel = "warn"
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, err
	}

	n, err := node.New(ctx, cfg, logger, o.nodeOptions...)
	if err != nil {
		return nil, err
	}

	c := &Cli{node: n, io: o.IO}
	n.Notices.Subscribe(c.printNotice)
	return c, nil
}

// Close закрывает узел
func (c *Cli) Close() error {
	return c.node.Close()
}

func (c *Cli) printNotice(n models.Notice) {
	switch n.Kind {
	case models.NoticeOffline:
		c.io.Println(warnStyle.Render(fmt.Sprintf("Offline: showing cached %s data (%s)", n.Namespace, n.Message)))
	case models.NoticeSessionTerminated:
		c.io.Println(errorStyle.Render("Session terminated, run 'bizkeeper login' again"))
	default:
		c.io.Println(warnStyle.Render(n.Message))
	}
}

// withCli открывает узел на время выполнения команды
func withCli(opts *RootOptions, fn func(ctx context.Context, c *Cli) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		c, err := opts.open(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		return fn(ctx, c)
	}
}
