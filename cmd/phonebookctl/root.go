package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phonebook/internal/backend"
	"phonebook/internal/config"
	"phonebook/internal/logger"
	"phonebook/internal/seed"
	"phonebook/internal/service"
)

// storeOpener opens the backend a command works on.
type storeOpener func(ctx context.Context, log *zap.Logger, driver string) (*backend.Backend, error)

type cli struct {
	open     storeOpener
	log      *zap.Logger
	driver   string
	logLevel string
}

func newRootCmd(open storeOpener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:           "phonebookctl",
		Short:         "Manage the phonebook store",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(config.LogConfig{Level: c.logLevel, Format: "console"})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.driver, "driver", "",
		"store driver (memory|postgres|mysql|mongo), defaults to STORE_DRIVER")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		c.migrateCmd(),
		c.listCmd(),
		c.addCmd(),
		c.seedCmd(),
	)
	return root
}

// withStore opens the store, runs fn and closes the store again.
func (c *cli) withStore(cmd *cobra.Command, fn func(b *backend.Backend, svc service.ContactService) error) error {
	b, err := c.open(cmd.Context(), c.log, c.driver)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			c.log.Warn("store_close_failed", zap.Error(err))
		}
	}()
	return fn(b, service.NewContactService(b.Repo))
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the contacts schema (SQL) or indexes (MongoDB)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(b *backend.Backend, _ service.ContactService) error {
				if err := b.Migrate(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", b.Driver)
				return nil
			})
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "Print contacts, optionally filtered by a case-insensitive name fragment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(_ *backend.Backend, svc service.ContactService) error {
				res, err := svc.List(cmd.Context(), service.ListOptions{Query: strings.Join(args, "")})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "phonebook:")
				for _, p := range res.Items {
					fmt.Fprintf(out, "%s - %s\n", p.Name, p.Number)
				}
				return nil
			})
		},
	}
}

func (c *cli) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME NUMBER",
		Short: "Add a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(_ *backend.Backend, svc service.ContactService) error {
				p, err := svc.Create(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s number %s to phonebook\n", p.Name, p.Number)
				return nil
			})
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert contacts from a YAML file, or the built-in sample entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := seed.Default()
			if file != "" {
				r, err := os.Open(file)
				if err != nil {
					return err
				}
				defer r.Close()
				if f, err = seed.Load(r); err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
			}
			return c.withStore(cmd, func(_ *backend.Backend, svc service.ContactService) error {
				res, err := seed.Apply(cmd.Context(), svc, f)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded phonebook: %d created, %d updated\n", res.Created, res.Updated)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file")
	return cmd
}
