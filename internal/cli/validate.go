package cli

import (
	"strings"

	"github.com/aicm-dev/aicm/internal/pipeline"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config and docs without writing files",
	Long: `Load and schema-check the configuration, then check that the docs
directories and referenced import files exist for every enabled agent.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, root, path, err := loadConfig()
	if err != nil {
		return err
	}

	report, err := pipeline.Validate(cfg, root)
	if err != nil {
		return err
	}

	out.Success("Configuration %s is valid", relPath(root, path))
	out.Detail("version: %s", cfg.Version)
	out.Detail("output mode: %s", cfg.OutputMode)
	out.Detail("docs: %s (%s)", relPath(root, report.DocsDir), out.Count(report.Docs, "document", "documents"))
	if ids := cfg.EnabledAgents(); len(ids) > 0 {
		out.Detail("enabled agents: %s", strings.Join(ids, ", "))
	}

	for _, w := range report.Warnings {
		out.Warn("%s", w)
	}
	if len(report.Agents) > 0 {
		out.Header("Agents")
	}
	for _, a := range report.Agents {
		if len(a.Errors) > 0 {
			out.Error("%s (%s): %s", a.Agent, a.Mode, strings.Join(a.Errors, "; "))
		} else {
			out.Success("%s (%s) → %s", a.Agent, a.Mode, strings.Join(a.Outputs, ", "))
		}
		for _, w := range a.Warnings {
			out.Warn("%s: %s", a.Agent, w)
		}
	}

	if report.Failed() {
		return errReported
	}
	return nil
}
