package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/studiowebux/keymapedit/internal/cli"
	"github.com/studiowebux/keymapedit/internal/config"
	"github.com/studiowebux/keymapedit/internal/editor"
	"github.com/studiowebux/keymapedit/internal/filter"
	"github.com/studiowebux/keymapedit/internal/history"
	"github.com/studiowebux/keymapedit/internal/keybinds"
	"github.com/studiowebux/keymapedit/internal/session"
	"github.com/studiowebux/keymapedit/internal/tui"
)

var (
	version = "0.1.0"
)

// environment is built once per invocation by the root pre-run hook
type environment struct {
	settings *config.Settings
	logger   *slog.Logger
	closers  []io.Closer
	journal  *history.Manager
	editor   *editor.Editor
	app      *cli.App
}

var env *environment

func main() {
	err := rootCmd.Execute()
	if env != nil {
		env.close()
	}
	if err != nil {
		os.Exit(cli.Report(os.Stderr, err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "keymapedit",
	Short: "Keymap macro insertion tool",
	Long: `keymapedit rewrites emulator keymap files: it removes the controls in the
bottom-right skill-card area and appends a macro layout, either the built-in
one or a template you import.

Run without arguments to start the TUI.

Examples:
  keymapedit                                  # Start interactive TUI
  keymapedit folder ~/keymaps                 # Select the keymap folder
  keymapedit list                             # List editable files
  keymapedit apply Global-pvp.json --dry-run  # Show what would change
  keymapedit apply --template mine.json       # Pick a file, use a template
  keymapedit delete old.json                  # Delete after confirmation`,
	Version:           version,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the editable keymap files of the selected folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.List()
	},
}

var folderCmd = &cobra.Command{
	Use:   "folder [path]",
	Short: "Show or select the keymap folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.Folder(firstArg(args))
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply [file]",
	Short: "Replace the skill-card controls of a keymap file",
	Long: `Remove every control inside the bottom-right exclusion area of the file and
append the macro layout. The file is overwritten in place; there is no backup.

The file can be given by its name or by its label as shown by 'list'. Without
a file, an interactive terminal shows a picker.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.Apply(firstArg(args), cli.ApplyOptions{
			Template: flagTemplate,
			DryRun:   flagDryRun,
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [file]",
	Short: "Delete a keymap file (cannot be undone)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.Delete(firstArg(args), flagYes)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a keymap file or a JMESPath query over it",
	Long: `Print a keymap file. With --query, print the result of a JMESPath expression
instead. Preset names are accepted: ` + presetList(),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.Show(args[0], flagQuery)
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Work with replacement templates",
}

var templateCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Check that a file can be imported as a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.CheckTemplate(args[0])
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in macro layout",
	Long:  "Print the built-in macro layout. With -o json the output is an importable template.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.Defaults()
	},
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the activity journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.Log(flagLimit, flagClear)
	},
}

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Show the usage manual",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.Manual()
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage TUI key bindings",
}

var keybindsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the default key bindings to the keybinds file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.ExportKeybinds(config.KeybindsFile, flagForce)
	},
}

var keybindsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the keybinds file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return env.app.CheckKeybinds(config.KeybindsFile)
	},
}

// Persistent flags
var (
	cfgFile string
)

// Command flags
var (
	flagTemplate string
	flagDryRun   bool
	flagYes      bool
	flagQuery    string
	flagLimit    int
	flagClear    bool
	flagForce    bool
)

func init() {
	// Settings overrides; koanf reads them through posflag when set
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "settings file (default ~/.keymapedit/config.yaml)")
	pf.StringP("output", "o", config.OutputText, "output format (text/json/yaml)")
	pf.String("log-level", "info", "log level (debug/info/warn/error)")
	pf.String("log-file", "", "log file, or - for stderr")
	pf.String("folder-config", "", "file that remembers the selected folder")
	pf.Bool("journal", true, "record edits in the activity journal")

	applyCmd.Flags().StringVarP(&flagTemplate, "template", "t", "", "template file to append instead of the built-in layout")
	applyCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "show the changes without writing")

	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "do not ask for confirmation")

	showCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath expression or preset name")

	logCmd.Flags().IntVarP(&flagLimit, "limit", "n", history.DefaultLimit, "number of entries to show")
	logCmd.Flags().BoolVar(&flagClear, "clear", false, "delete every entry")

	keybindsExportCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "overwrite an existing file")

	templateCmd.AddCommand(templateCheckCmd)
	keybindsCmd.AddCommand(keybindsExportCmd, keybindsCheckCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(manualCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// setup loads settings, opens the log and the journal, and restores the
// session
func setup(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.LoadSettings(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	logger, logCloser, err := config.NewLogger(settings)
	if err != nil {
		return err
	}
	env = &environment{settings: settings, logger: logger, closers: []io.Closer{logCloser}}
	cmd.SetContext(config.WithLogger(cmd.Context(), logger))

	logger.Debug("settings loaded", "file", config.SettingsFileUsed(), "command", cmd.Name())

	opts := editor.Options{Logger: logger}
	if settings.Journal {
		journal, err := history.NewManager(config.DatabasePath)
		if err != nil {
			// The journal is an audit aid; editing works without it
			logger.Warn("activity journal unavailable", "path", config.DatabasePath, "error", err)
		} else {
			env.journal = journal
			env.closers = append(env.closers, journal)
			opts.Journal = journal
		}
	}

	store := session.NewStore(settings.FolderConfig, logger)
	env.editor = editor.New(session.Restore(store), store, opts)
	env.app = cli.New(env.editor, env.journal, settings.Output)

	return nil
}

func (e *environment) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			e.logger.Warn("close failed", "error", err)
		}
	}
}

// runTUI starts the interactive TUI
func runTUI(cmd *cobra.Command) error {
	logger := config.GetLogger(cmd.Context())

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		logger.Warn("using default key bindings", "error", err)
		registry = keybinds.NewDefaultRegistry()
	}

	return tui.Run(tui.Options{
		Editor:   env.editor,
		Journal:  env.journal,
		Keybinds: registry,
		Logger:   logger,
	})
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func presetList() string {
	return strings.Join(filter.PresetNames(), ", ")
}
