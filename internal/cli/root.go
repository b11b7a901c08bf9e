// Package cli implements the calc command line: one-shot evaluation of
// arguments, evaluation of files, and an interactive session.
package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/internal/errwrap"
	"github.com/zephyrtronium/calc/internal/session"
)

// Version is filled when building with -ldflags, but not when installing via
// "go install".
var Version string

// NewRootCmd creates the calc command. Files named by flags are opened on fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [flags] [expr...]",
		Short: "An arithmetic expression calculator.",
		Long: "Evaluates arithmetic expressions with + - * / % **, parentheses, and the\n" +
			"functions sqrt, max and min. With no expressions and no input file, calc\n" +
			"starts an interactive session. Use -- before an expression that begins\n" +
			"with a minus sign.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fs, args)
		},
	}
	cmd.Flags().String("in", "", "input file, or - for stdin")
	cmd.Flags().BoolP("lines", "n", false, "parse separate input lines as separate expressions")
	cmd.Flags().String("fmt", "", "fmt verb for results (default like 7.0 or 1e+16)")
	cmd.Flags().Bool("echo", false, "print parse trees")
	cmd.Flags().String("history", session.DefaultHistoryFile, "file written by :save")
	cmd.Flags().String("config", "", "YAML configuration file")
	cmd.Flags().Bool("version", false, "report version of this executable")
	cmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	return cmd
}

// Execute runs the calc command with the process arguments. This is called by
// main.main().
func Execute() {
	cmd := NewRootCmd(afero.NewOsFs())
	if err := cmd.Execute(); err != nil {
		for _, err := range errwrap.Errors(err) {
			log.Debug(err)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, fs afero.Fs, args []string) error {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(log.WarnLevel)
	if getFlag(cmd, "version") {
		fmt.Fprintln(cmd.OutOrStdout(), "calc", version())
		return nil
	}
	cfg, err := resolveConfig(cmd, fs)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Error:", err)
		return err
	}
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.Debugf("config: %+v", *cfg)

	s := session.New(fs, cfg.HistoryFile)
	s.Format = session.Formatter(cfg.Format, fmt.Sprintf)
	s.Echo = getFlag(cmd, "echo")

	in := getString(cmd, "in")
	switch {
	case len(args) > 0 || in != "":
		return evalAll(cmd, fs, s, in, args)
	default:
		return repl(cmd, s, cfg.Prompt)
	}
}

// resolveConfig loads the configuration file, if any, and applies flags
// given explicitly on top of it.
func resolveConfig(cmd *cobra.Command, fs afero.Fs) (*Config, error) {
	cfg := DefaultConfig()
	if path := getString(cmd, "config"); path != "" {
		c, err := LoadConfig(fs, path)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if cmd.Flags().Changed("history") {
		cfg.HistoryFile = getString(cmd, "history")
	}
	if cmd.Flags().Changed("fmt") {
		cfg.Format = getString(cmd, "fmt")
	}
	if getFlag(cmd, "verbose") {
		cfg.Verbose = true
	}
	return cfg, nil
}

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(unknown version)"
}

// getFlag gets a bool flag that the command is known to define.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// getString gets a string flag that the command is known to define.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// report prints the outcome of one evaluation. It returns err.
func report(cmd *cobra.Command, out string, err error) error {
	w := cmd.OutOrStdout()
	if err != nil {
		fmt.Fprintln(w, "Error:", err)
		return err
	}
	if out != "" {
		fmt.Fprintln(w, out)
	}
	return nil
}
