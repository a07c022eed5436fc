package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/flat/lupusregina/database"
	"github.com/flat/lupusregina/prefix"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func newPrefixCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefix",
		Short: "Inspect and edit stored guild prefixes without connecting to Discord",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every stored prefix",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(func(db database.DB) error {
					prefixes, err := db.GetAllPrefixes(cmd.Context())
					for _, e := range multierr.Errors(err) {
						cmd.PrintErrln("skipped:", e)
					}
					if prefixes == nil && err != nil {
						return err
					}

					ids := make([]uint64, 0, len(prefixes))
					for id := range prefixes {
						ids = append(ids, id)
					}
					sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
					for _, id := range ids {
						fmt.Fprintf(cmd.OutOrStdout(), "%v\t%v\n", id, prefixes[id])
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "get <guild id>",
			Short: "Show the prefix a guild resolves to",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				gid, err := parseGuildID(args[0])
				if err != nil {
					return err
				}
				return a.withStore(func(db database.DB) error {
					p, err := db.GetPrefix(cmd.Context(), gid)
					if errors.Is(err, database.ErrNotFound) {
						fmt.Fprintf(cmd.OutOrStdout(), "%v (default)\n", a.cfg.DefaultPrefix)
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), p)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set <guild id> <prefix>",
			Short: "Store a prefix for a guild",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				gid, err := parseGuildID(args[0])
				if err != nil {
					return err
				}
				return a.withStore(func(db database.DB) error {
					svc := prefix.NewService(&prefix.Config{Store: db, Log: zap.NewNop(), Default: a.cfg.DefaultPrefix})
					if err := svc.Set(cmd.Context(), gid, args[1]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "set prefix for %v to %v\n", gid, args[1])
					return nil
				})
			},
		},
	)
	return cmd
}

func (a *app) withStore(fn func(db database.DB) error) (err error) {
	db, err := database.NewSqliteDatabase(&database.Config{Log: zap.NewNop(), Path: a.cfg.DatabasePath})
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()
	return fn(db)
}

func parseGuildID(s string) (uint64, error) {
	gid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid guild id %q", s)
	}
	return gid, nil
}

