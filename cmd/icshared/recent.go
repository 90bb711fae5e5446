package icshared

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icarus-vfx/icshared/pkg/recent"
)

func (a *app) openRecent(key string) (*recent.List, error) {
	return recent.Open(a.settings.RecentFile, key, a.settings.NumRecentFiles,
		recent.WithReporter(a.reporter))
}

func newRecentCmd(a *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:     "recent",
		Short:   MsgRecentShort,
		GroupID: "misc",
	}
	cmd.PersistentFlags().StringVarP(&key, "key", "k", recent.DefaultKey, MsgFlagKey)

	put := &cobra.Command{
		Use:   "put <entry>",
		Short: MsgRecentPutShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openRecent(key)
			if err != nil {
				return err
			}
			return l.Put(args[0])
		},
	}

	var last bool
	get := &cobra.Command{
		Use:   "get",
		Short: MsgRecentGetShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openRecent(key)
			if err != nil {
				return err
			}
			entries := l.Get()
			if len(entries) == 0 {
				a.reporter.Message(MsgRecentEmpty)
				return nil
			}
			if last {
				entries = entries[:1]
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
	get.Flags().BoolVarP(&last, "last", "l", false, MsgFlagLast)

	cmd.AddCommand(put, get)
	return cmd
}
