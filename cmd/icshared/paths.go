package icshared

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTranslateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "translate <path>...",
		Short:   MsgTranslateShort,
		GroupID: "paths",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				translated, err := a.translator.TranslateE(p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), translated)
			}
			return nil
		},
	}
}

func newUNCCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "unc <path>...",
		Short:   MsgUNCShort,
		GroupID: "paths",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				mapped, err := a.drives.MapToDriveE(p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mapped)
			}
			return nil
		},
	}
}
