package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aicm-dev/aicm/internal/branding"
	"github.com/aicm-dev/aicm/internal/config"
	"github.com/aicm-dev/aicm/internal/settings"
	"github.com/aicm-dev/aicm/internal/ui"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagConfig string
	flagRoot   string
)

// out is the printer for the running command, set in PersistentPreRun.
var out *ui.Printer

// errReported is returned after a command has already printed its failure.
var errReported = errors.New("command failed")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps the context files of AI coding assistants in sync with one
directory of Markdown docs. Enable agents in ai-context.yaml, then run generate.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings.Load()
		out = ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), settings.ColorMode())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the config file (default ai-context.yaml, or $"+branding.EnvVar("CONFIG")+")")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", ".", "Project root that docs and output paths resolve against")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printer().Error("%v", err)
	}
	return err
}

// printer returns the command printer, or a plain one when the command
// failed before PersistentPreRun (e.g. flag parsing errors).
func printer() *ui.Printer {
	if out != nil {
		return out
	}
	return ui.New(os.Stdout, os.Stderr, ui.ColorNever)
}

// projectRoot returns the absolute --root directory.
func projectRoot() (string, error) {
	root, err := filepath.Abs(flagRoot)
	if err != nil {
		return "", fmt.Errorf("resolving --root: %w", err)
	}
	return root, nil
}

// configPath resolves the config file against the project root.
func configPath(root string) string {
	p := settings.ConfigPath(flagConfig)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// loadConfig loads the project config, returning the root and the path it came from.
func loadConfig() (*config.Config, string, string, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, "", "", err
	}
	path := configPath(root)
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, "", "", fmt.Errorf("%w (run '%s init' to create one)", err, branding.CLIName())
		}
		return nil, "", "", err
	}
	return cfg, root, path, nil
}

// relPath shortens p to be relative to root for display.
func relPath(root, p string) string {
	if r, err := filepath.Rel(root, p); err == nil && !filepath.IsAbs(r) && r != ".." && !hasParentPrefix(r) {
		return filepath.ToSlash(r)
	}
	return p
}

func hasParentPrefix(p string) bool {
	return len(p) >= 3 && p[:3] == ".."+string(filepath.Separator)
}
