package icshared

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Cross-platform file, path and process helpers for the pipeline"
	MsgTranslateShort  = "Translate paths to the current platform"
	MsgUNCShort        = "Convert UNC paths to mapped drive letters"
	MsgMkdirShort      = "Create a directory and any missing parents"
	MsgCopyShort       = "Copy a file"
	MsgMoveShort       = "Move a file or directory"
	MsgRenameShort     = "Rename a file or directory"
	MsgCopyTreeShort   = "Copy a directory tree"
	MsgRemoveShort     = "Remove a file or directory tree"
	MsgHardlinkShort   = "Hard link a file, copying if linking fails"
	MsgWalkShort       = "List a directory tree breadth-first"
	MsgExecShort       = "Run a program and print its output"
	MsgPopenShort      = "Start a command line in the background"
	MsgCallShort       = "Run a command line and wait for it"
	MsgShellShort      = "Start the configured interactive shell"
	MsgOpenShort       = "Open a file, directory or URL with its default application"
	MsgRecentShort     = "Read and update recent lists"
	MsgRecentPutShort  = "Add an entry to a recent list"
	MsgRecentGetShort  = "Print a recent list"
	MsgSeqShort        = "Frame sequence helpers"
	MsgSeqListShort    = "Expand range notation into frame numbers"
	MsgSeqRangeShort   = "Collapse frame numbers into range notation"
	MsgSeqDetectShort  = "Detect the sequence a frame file belongs to"
	MsgSeqExpandShort  = "Expand a bracketed sequence name into frame paths"
	MsgSeqBasesShort   = "List the sequences in a directory"
	MsgSeqCheckShort   = "Check a frame range against the shot range"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgNotifyShort     = "Show a desktop notification"

	// Output
	MsgVersionFormat    = "icshared version %s\n  commit: %s\n  built:  %s\n"
	MsgWalkDir          = "%s/\n"
	MsgWalkFile         = "  %s\n"
	MsgSeqDetectFormat  = "%s (%s)\n"
	MsgSeqCheckMatch    = "%s matches the shot range\n"
	MsgSeqCheckMismatch = "%s does not match the shot range %s\n"
	MsgRecentEmpty      = "Recent list is empty"
	MsgCopyTreeDone     = "Finished copying %s"

	// Error messages
	MsgErrLoadSettings = "failed to load settings: %w"
	MsgErrOpen         = "could not open %s"
	MsgErrNoCommand    = "no command specified"
	MsgErrFramePattern = "%q is not a frame number"
	MsgErrCheckFailed  = "frame range %s does not match the shot range"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity on top of IC_VERBOSITY (repeatable)"
	MsgFlagGlobals        = "Globals document with path translation rules (overrides IC_GLOBALS)"
	MsgFlagOS             = "Treat the host as this platform: mac, win or linux (overrides IC_OS)"
	MsgFlagIgnore         = "Glob of names to skip; may be repeated"
	MsgFlagFollowSymlinks = "Copy the targets of symlinks instead of the links"
	MsgFlagQuiet          = "Do not report the removal"
	MsgFlagNoVerify       = "Do not check the link and do not fall back to copying"
	MsgFlagDepth          = "Maximum depth to descend; 1 lists only the top directory"
	MsgFlagKey            = "Recent list to use"
	MsgFlagLast           = "Print only the newest entry"
	MsgFlagUnsorted       = "Keep frames in the order they appear"
	MsgFlagPadding        = "Zero-pad frame numbers to this width"
	MsgFlagDelimiter      = "Character separating the frame number"
	MsgFlagIgnorePadding  = "Accept frames with a different number of digits"
	MsgFlagContiguous     = "Only report the run of frames containing the file"
	MsgFlagShotRange      = "Shot frame range (overrides IC_FRAMERANGE)"
	MsgFlagManDir         = "Directory to write the man pages to"
	MsgFlagNotify         = "Raise a desktop notification when the copy finishes"
)

// MsgRootLong is the root command help.
const MsgRootLong = `icshared exposes the shared pipeline helpers on the command line: path
translation between workstation platforms, filesystem operations that
understand those translations, process launching, recent lists and frame
sequence utilities.

Settings come from IC_* environment variables. Path translation rules are
read from the globals document named by IC_GLOBALS.`

// MsgCompletionLong describes how to load completions.
const MsgCompletionLong = `To load completions:

Bash:
  $ source <(icshared completion bash)

Zsh:
  $ icshared completion zsh > "${fpath[1]}/_icshared"

Fish:
  $ icshared completion fish | source

PowerShell:
  PS> icshared completion powershell | Out-String | Invoke-Expression
`
