package icshared

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icarus-vfx/icshared/pkg/errors"
)

func newExecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "exec -- <program> [args...]",
		Short:   MsgExecShort,
		GroupID: "process",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.runner.Execute(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newPopenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "popen -- <command line...>",
		Short:   MsgPopenShort,
		GroupID: "process",
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a.runner.Popen(args)
		},
	}
}

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "call -- <command line...>",
		Short:   MsgCallShort,
		GroupID: "process",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner.Call(cmd.Context(), args)
		},
	}
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "shell",
		Short:   MsgShellShort,
		GroupID: "process",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner.Shell(cmd.Context())
		},
	}
}

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "open <path-or-url>",
		Short:   MsgOpenShort,
		GroupID: "process",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.runner.Open(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.Newf(errors.ErrEnvironment, MsgErrOpen, args[0])
			}
			return nil
		},
	}
}
