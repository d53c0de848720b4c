package cli

import (
	"fmt"
	"os"

	"github.com/aicm-dev/aicm/internal/agents"
	"github.com/aicm-dev/aicm/internal/branding"
	"github.com/aicm-dev/aicm/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default ai-context.yaml",
	Long: `Create a default configuration with claude enabled and every other agent
disabled, plus the docs directory it points at. An existing file is left as is.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	path := configPath(root)

	created, err := config.Init(path, agents.IDStrings())
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	if !created {
		out.Info("Configuration file already exists: %s", relPath(root, path))
		return nil
	}
	out.Success("Created %s", relPath(root, path))

	docsDir := config.ResolvePath(root, config.DefaultBaseDocsDir)
	if _, err := os.Stat(docsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(docsDir, 0755); err != nil {
			return fmt.Errorf("creating docs directory: %w", err)
		}
		out.Success("Created %s/", relPath(root, docsDir))
	}

	out.Detail("Add Markdown files to %s, then run '%s generate'.", relPath(root, docsDir), branding.CLIName())
	return nil
}
