package icshared

import (
	"strings"

	"github.com/spf13/cobra"
)

func newNotifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "notify <message>...",
		Short:   MsgNotifyShort,
		GroupID: "misc",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.reporter.MessageNotify(strings.Join(args, " "))
			return nil
		},
	}
}
