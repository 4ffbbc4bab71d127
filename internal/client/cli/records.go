package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/bizkeeper/internal/client/transport"
	"github.com/iudanet/bizkeeper/internal/models"
)

// DefaultConnectTimeout сколько ждать подключения транспорта перед записью
const DefaultConnectTimeout = 3 * time.Second

// RecordOptions флаги команд записи
type RecordOptions struct {
	*RootOptions
	JSON           string
	Fields         []string
	ConnectTimeout time.Duration
}

func (o *RecordOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.JSON, "json", "", "record as JSON object")
	cmd.Flags().StringArrayVarP(&o.Fields, "field", "f", nil, "record field as key=value (repeatable)")
	cmd.Flags().DurationVar(&o.ConnectTimeout, "connect-timeout", DefaultConnectTimeout,
		"how long to wait for the authority connection in client mode")
}

// record собирает запись из --json и --field
func (o *RecordOptions) record() (models.Record, error) {
	rec := models.Record{}
	if o.JSON != "" {
		if err := json.Unmarshal([]byte(o.JSON), &rec); err != nil {
			return nil, fmt.Errorf("invalid --json: %w", err)
		}
	}
	fields, err := parseFields(o.Fields)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		rec[k] = v
	}
	return rec, nil
}

// parseFields разбирает key=value. Значение, являющееся корректным JSON (число, bool, объект),
// сохраняется типизированным, иначе как строка.
func parseFields(pairs []string) (models.Record, error) {
	rec := models.Record{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: expected key=value", pair)
		}

		var typed any
		if err := json.Unmarshal([]byte(value), &typed); err == nil {
			rec[key] = typed
		} else {
			rec[key] = value
		}
	}
	return rec, nil
}

// NewAddCommand создает команду add
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <collection>",
		Short: "Add a record",
		Example: `  bizkeeper add customers -f name=ACME -f vip=true
  bizkeeper add quotes --json '{"customer":"c-1","total":1200}'`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := opts.record()
			if err != nil {
				return err
			}
			return withCli(rootOpts, func(ctx context.Context, c *Cli) error {
				c.connect(ctx, opts.ConnectTimeout)

				saved, err := c.node.Data.Add(ctx, args[0], rec)
				if err != nil {
					return err
				}
				c.io.Println(successStyle.Render("✓ Added " + saved.ID()))
				return c.printRecord(saved)
			})(cmd, args)
		},
	}
	opts.bind(cmd)

	return cmd
}

// NewUpdateCommand создает команду update
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "update <collection> <id>",
		Short:        "Patch a record",
		Example:      `  bizkeeper update invoices i-1 -f status=paid`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := opts.record()
			if err != nil {
				return err
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update: pass --field or --json")
			}
			return withCli(rootOpts, func(ctx context.Context, c *Cli) error {
				c.connect(ctx, opts.ConnectTimeout)

				saved, err := c.node.Data.Update(ctx, args[0], args[1], patch)
				if err != nil {
					return err
				}
				c.io.Println(successStyle.Render("✓ Updated " + saved.ID()))
				return c.printRecord(saved)
			})(cmd, args)
		},
	}
	opts.bind(cmd)

	return cmd
}

// NewDeleteCommand создает команду delete
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "delete <collection> <id>",
		Short:        "Delete a record",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCli(rootOpts, func(ctx context.Context, c *Cli) error {
				c.connect(ctx, opts.ConnectTimeout)

				if err := c.node.Data.Delete(ctx, args[0], args[1]); err != nil {
					return err
				}
				c.io.Println(successStyle.Render("✓ Deleted " + args[1]))
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().DurationVar(&opts.ConnectTimeout, "connect-timeout", DefaultConnectTimeout,
		"how long to wait for the authority connection in client mode")

	return cmd
}

// NewListCommand создает команду list
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "list <collection>",
		Short:        "List local records of a collection",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCli(rootOpts, func(ctx context.Context, c *Cli) error {
				records, err := c.node.Data.List(ctx, args[0])
				if err != nil {
					return err
				}

				if len(records) == 0 {
					c.io.Println("No records found.")
					return nil
				}

				sort.Slice(records, func(i, j int) bool { return records[i].ID() < records[j].ID() })
				c.io.Println(titleStyle.Render(fmt.Sprintf("%s (%d)", args[0], len(records))))
				for _, rec := range records {
					if err := c.printRecord(rec); err != nil {
						return err
					}
				}
				return nil
			})(cmd, args)
		},
	}
}

// NewGetCommand создает команду get
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "get <collection> <id>",
		Short:        "Fetch a record from the authority (cached when offline)",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCli(rootOpts, func(ctx context.Context, c *Cli) error {
				rec, err := c.node.Reports.Record(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return c.printRecord(rec)
			})(cmd, args)
		},
	}
}

// NewStatsCommand создает команду stats
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "stats",
		Short:        "Show per-collection counts from the authority (cached when offline)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: withCli(rootOpts, func(ctx context.Context, c *Cli) error {
			stats, err := c.node.Reports.Stats(ctx)
			if err != nil {
				return err
			}

			c.io.Println(titleStyle.Render("Collections"))
			for _, name := range models.AllCollections() {
				c.io.Println(field(name, fmt.Sprint(stats.Counts[name])))
			}
			return nil
		}),
	}
}

// connect в режиме client пытается поднять транспорт, чтобы запись подтвердил authority.
// Если подключиться не удалось, диспетчер зафиксирует запись локально.
func (c *Cli) connect(ctx context.Context, timeout time.Duration) {
	if !c.node.Network.Preferences().IsClient() || timeout <= 0 {
		return
	}

	connected := make(chan struct{})
	var once sync.Once
	unsubscribe := c.node.Transport.Subscribe(func(s transport.State) {
		if s == transport.StateConnected {
			once.Do(func() { close(connected) })
		}
	})
	defer unsubscribe()

	c.node.Transport.Reconcile(ctx)
	if c.node.Transport.IsConnected() {
		return
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-connected:
	case <-timer.C:
		c.io.Println(warnStyle.Render("Authority not reachable, saving locally"))
	case <-ctx.Done():
	}
}

func (c *Cli) printRecord(rec models.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to format record: %w", err)
	}
	c.io.Println(string(data))
	return nil
}
