package icshared

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/icarus-vfx/icshared/pkg/filesystem"
)

// pathResult adapts a two-argument filesystem operation into a command that
// prints the resulting path.
func pathResult(op func(src, dst string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		result, err := op(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	}
}

func newMkdirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "mkdir <path>",
		Short:   MsgMkdirShort,
		GroupID: "files",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.ops.Mkdir(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "copy <src> <dst>",
		Short:   MsgCopyShort,
		GroupID: "files",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return pathResult(a.ops.Copy)(cmd, args)
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "move <src> <dst>",
		Short:   MsgMoveShort,
		GroupID: "files",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return pathResult(a.ops.Move)(cmd, args)
		},
	}
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <src> <dst>",
		Short:   MsgRenameShort,
		GroupID: "files",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return pathResult(a.ops.Rename)(cmd, args)
		},
	}
}

func newCopyTreeCmd(a *app) *cobra.Command {
	var opts filesystem.CopyTreeOptions
	var notifyDone bool

	cmd := &cobra.Command{
		Use:     "copytree <src> <dst>",
		Short:   MsgCopyTreeShort,
		GroupID: "files",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return pathResult(func(src, dst string) (string, error) {
				result, err := a.ops.CopyTree(src, dst, opts)
				if err == nil && notifyDone {
					a.reporter.MessageNotify(fmt.Sprintf(MsgCopyTreeDone, result))
				}
				return result, err
			})(cmd, args)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, MsgFlagIgnore)
	cmd.Flags().BoolVar(&opts.FollowSymlinks, "follow-symlinks", false, MsgFlagFollowSymlinks)
	cmd.Flags().BoolVar(&notifyDone, "notify", false, MsgFlagNotify)
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "remove <path>",
		Short:   MsgRemoveShort,
		GroupID: "files",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.ops.Remove(args[0], quiet)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, MsgFlagQuiet)
	return cmd
}

func newHardlinkCmd(a *app) *cobra.Command {
	var noVerify bool

	cmd := &cobra.Command{
		Use:     "hardlink <src> <dst>",
		Short:   MsgHardlinkShort,
		GroupID: "files",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return pathResult(func(src, dst string) (string, error) {
				return a.ops.Hardlink(src, dst, !noVerify)
			})(cmd, args)
		},
	}
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, MsgFlagNoVerify)
	return cmd
}

func newWalkCmd(a *app) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:     "walk <dir>",
		Short:   MsgWalkShort,
		GroupID: "files",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for entry, err := range a.ops.Walk(args[0], depth) {
				if err != nil {
					if entry.Depth == 1 {
						return err
					}
					a.reporter.Warning(err.Error())
					continue
				}
				fmt.Fprintf(out, MsgWalkDir, filepath.ToSlash(entry.Dir))
				for _, f := range entry.Files {
					fmt.Fprintf(out, MsgWalkFile, filepath.Base(f))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 1, MsgFlagDepth)
	return cmd
}
