package cli

import (
	"fmt"
	"strings"

	"github.com/aicm-dev/aicm/internal/agents"
	"github.com/aicm-dev/aicm/internal/cleanup"
	"github.com/spf13/cobra"
)

var cleanAgent string

func init() {
	cleanCmd.Flags().StringVar(&cleanAgent, "agent", "", "Remove the outputs of this agent, enabled or not")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated files",
	Long: `Remove the generated files of every disabled agent, or of the agent named
by --agent. Files that cannot be removed are reported as warnings.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	var reports []cleanup.Report

	if cleanAgent != "" {
		id, ok := agents.ParseID(cleanAgent)
		if !ok {
			return fmt.Errorf("unknown agent %q (known: %s)", cleanAgent, strings.Join(agents.IDStrings(), ", "))
		}
		root, err := projectRoot()
		if err != nil {
			return err
		}
		p, _ := agents.Lookup(id)
		reports = append(reports, cleanup.Agent(p, root))
	} else {
		cfg, root, _, err := loadConfig()
		if err != nil {
			return err
		}
		reports = cleanup.Disabled(cfg, root)
	}

	removed := 0
	for _, r := range reports {
		for _, p := range r.Removed {
			out.Removed(p)
		}
		for _, w := range r.Warnings {
			out.Warn("%s: %s", r.Agent, w)
		}
		removed += len(r.Removed)
	}
	if removed == 0 {
		out.Info("Nothing to clean")
		return nil
	}
	out.Success("Removed %s", out.Count(removed, "path", "paths"))
	return nil
}
