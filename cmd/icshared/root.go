package icshared

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/icarus-vfx/icshared/internal/version"
	"github.com/icarus-vfx/icshared/pkg/config"
	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/filesystem"
	"github.com/icarus-vfx/icshared/pkg/logging"
	"github.com/icarus-vfx/icshared/pkg/notify"
	"github.com/icarus-vfx/icshared/pkg/paths"
	"github.com/icarus-vfx/icshared/pkg/process"
	"github.com/icarus-vfx/icshared/pkg/ui"
)

// app holds what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE once flags are parsed.
type app struct {
	verbosity int
	globals   string
	os        string

	settings     *config.Settings
	presentation ui.Presentation
	reporter     *logging.Verbose
	translator   *paths.Translator
	drives       *paths.DriveMapper
	ops          *filesystem.Ops
	runner       *process.Runner
}

func (a *app) setup(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if a.globals != "" {
		overrides["globals"] = a.globals
	}
	if a.os != "" {
		overrides["os"] = a.os
	}
	s, err := config.LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf(MsgErrLoadSettings, err)
	}
	s.Verbosity = min(s.Verbosity+a.verbosity, config.MaxVerbosity)
	a.settings = s

	a.presentation = detectPresentation(cmd.ErrOrStderr(), s.Standalone())
	logging.SetupLoggerTo(cmd.ErrOrStderr(), s.Verbosity, a.presentation)
	log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")

	logger := logging.GetLogger("icshared")
	base := logging.NewReporter(logger, nil)
	a.reporter = logging.NewReporter(logger, newNotifier(s, base)).WithTitle(s.Name)

	globals := config.FileGlobals(s.Globals)
	a.translator = paths.NewTranslator(s, globals, a.reporter)
	a.drives = paths.NewDriveMapper(s, globals, a.reporter)
	a.ops = filesystem.NewOps(filesystem.NewOS(), a.translator, s.OS, a.reporter)

	a.runner = process.NewRunner(s, a.translator, a.reporter)
	a.runner.Stdin = cmd.InOrStdin()
	a.runner.Stdout = cmd.OutOrStdout()
	a.runner.Stderr = cmd.ErrOrStderr()
	return nil
}

// newNotifier builds the reporter's desktop notifier.
var newNotifier = func(s *config.Settings, fallback notify.Messenger) notify.Notifier {
	return notify.New(s, fallback)
}

func detectPresentation(w io.Writer, standalone bool) ui.Presentation {
	if f, ok := w.(*os.File); ok {
		return ui.DetectPresentation(f, standalone)
	}
	return ui.Plain()
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "icshared",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.globals, "globals", "", MsgFlagGlobals)
	rootCmd.PersistentFlags().StringVar(&a.os, "os", "", MsgFlagOS)

	rootCmd.AddGroup(
		&cobra.Group{ID: "paths", Title: "PATHS:"},
		&cobra.Group{ID: "files", Title: "FILES:"},
		&cobra.Group{ID: "process", Title: "PROCESSES:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)

	rootCmd.AddCommand(newTranslateCmd(a))
	rootCmd.AddCommand(newUNCCmd(a))

	rootCmd.AddCommand(newMkdirCmd(a))
	rootCmd.AddCommand(newCopyCmd(a))
	rootCmd.AddCommand(newMoveCmd(a))
	rootCmd.AddCommand(newRenameCmd(a))
	rootCmd.AddCommand(newCopyTreeCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newHardlinkCmd(a))
	rootCmd.AddCommand(newWalkCmd(a))

	rootCmd.AddCommand(newExecCmd(a))
	rootCmd.AddCommand(newPopenCmd(a))
	rootCmd.AddCommand(newCallCmd(a))
	rootCmd.AddCommand(newShellCmd(a))
	rootCmd.AddCommand(newOpenCmd(a))

	rootCmd.AddCommand(newRecentCmd(a))
	rootCmd.AddCommand(newSeqCmd(a))
	rootCmd.AddCommand(newNotifyCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// FormatError renders a command failure the way the console reports
// errors.
func FormatError(err error) string {
	standalone := false
	if s, loadErr := config.Load(); loadErr == nil {
		standalone = s.Standalone()
	}
	p := detectPresentation(os.Stderr, standalone)
	return p.Render(ui.StyleError, "ERROR: "+errors.Message(err))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.FromOS(err, "Cannot create %s", dir)
			}
			header := &doc.GenManHeader{Title: "ICSHARED", Section: "1"}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}
