package icshared

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/filesystem"
	"github.com/icarus-vfx/icshared/pkg/logging"
	"github.com/icarus-vfx/icshared/pkg/sequence"
)

func (a *app) finder() *sequence.Finder {
	return sequence.NewFinder(filesystem.NewOS(), a.reporter)
}

func newSeqCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "seq",
		Short:   MsgSeqShort,
		GroupID: "misc",
	}
	cmd.AddCommand(
		newSeqListCmd(),
		newSeqRangeCmd(),
		newSeqDetectCmd(a),
		newSeqExpandCmd(a),
		newSeqBasesCmd(a),
		newSeqCheckCmd(a),
	)
	return cmd
}

func newSeqListCmd() *cobra.Command {
	var unsorted bool

	cmd := &cobra.Command{
		Use:   "list <range>",
		Short: MsgSeqListShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := sequence.NumList(strings.Join(args, " "), !unsorted)
			if err != nil {
				return err
			}
			words := make([]string, len(nums))
			for i, n := range nums {
				words[i] = strconv.Itoa(n)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(words, " "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&unsorted, "unsorted", false, MsgFlagUnsorted)
	return cmd
}

func newSeqRangeCmd() *cobra.Command {
	var padding int

	cmd := &cobra.Command{
		Use:   "range <frame>...",
		Short: MsgSeqRangeShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var nums []int
			for _, arg := range args {
				for _, field := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' }) {
					n, err := strconv.Atoi(strings.TrimSpace(field))
					if err != nil {
						return errors.Newf(errors.ErrInvalidInput, MsgErrFramePattern, field)
					}
					nums = append(nums, n)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), sequence.NumRange(nums, padding))
			return nil
		},
	}
	cmd.Flags().IntVarP(&padding, "padding", "p", 0, MsgFlagPadding)
	return cmd
}

func newSeqDetectCmd(a *app) *cobra.Command {
	var opts sequence.DetectOptions

	cmd := &cobra.Command{
		Use:   "detect <frame-file>",
		Short: MsgSeqDetectShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := a.finder().Detect(a.translator.Translate(args[0]), opts)
			if err != nil {
				return err
			}
			delimiter := opts.Delimiter
			if delimiter == "" {
				delimiter = sequence.DefaultDelimiter
			}
			name := seq.Prefix + delimiter + "[" + seq.Frames + "]" + seq.Ext
			fmt.Fprintf(cmd.OutOrStdout(), MsgSeqDetectFormat,
				filepath.ToSlash(filepath.Join(seq.Dir, name)), logging.Pluralise("frame", seq.Count))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Delimiter, "delimiter", sequence.DefaultDelimiter, MsgFlagDelimiter)
	cmd.Flags().BoolVar(&opts.IgnorePadding, "ignore-padding", false, MsgFlagIgnorePadding)
	cmd.Flags().BoolVar(&opts.Contiguous, "contiguous", false, MsgFlagContiguous)
	return cmd
}

func newSeqExpandCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expand <dir> <pattern>",
		Short: MsgSeqExpandShort,
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range sequence.Expand(a.translator.Translate(args[0]), args[1]) {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
		},
	}
}

func newSeqBasesCmd(a *app) *cobra.Command {
	var delimiter string

	cmd := &cobra.Command{
		Use:   "bases <dir>",
		Short: MsgSeqBasesShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bases, err := a.finder().Bases(a.translator.Translate(args[0]), delimiter)
			if err != nil {
				return err
			}
			for _, b := range bases {
				fmt.Fprintln(cmd.OutOrStdout(), b)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&delimiter, "delimiter", sequence.DefaultDelimiter, MsgFlagDelimiter)
	return cmd
}

func newSeqCheckCmd(a *app) *cobra.Command {
	var shotRange string

	cmd := &cobra.Command{
		Use:   "check <first-last>",
		Short: MsgSeqCheckShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if shotRange == "" {
				shotRange = a.settings.FrameRange
			}
			ok, err := sequence.Check(args[0], shotRange)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), MsgSeqCheckMismatch, args[0], shotRange)
				return errors.Newf(errors.ErrVerificationFailed, MsgErrCheckFailed, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgSeqCheckMatch, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&shotRange, "shot-range", "", MsgFlagShotRange)
	return cmd
}
