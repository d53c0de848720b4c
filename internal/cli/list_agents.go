package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aicm-dev/aicm/internal/agents"
	"github.com/aicm-dev/aicm/internal/config"
	"github.com/spf13/cobra"
)

var listAgentsJSON bool

var listAgentsCmd = &cobra.Command{
	Use:   "list-agents",
	Short: "List supported agents and their output files",
	Args:  cobra.NoArgs,
	RunE:  runListAgents,
}

func init() {
	listAgentsCmd.Flags().BoolVar(&listAgentsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listAgentsCmd)
}

// agentEntry represents a supported agent for display.
type agentEntry struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Modes       []string `json:"modes"`
	Merged      []string `json:"merged,omitempty"`
	Split       []string `json:"split,omitempty"`
}

func agentEntries() []agentEntry {
	var entries []agentEntry
	for _, p := range agents.All() {
		e := agentEntry{ID: string(p.ID()), Description: p.Description()}
		if p.Supports(config.Merged) {
			e.Modes = append(e.Modes, string(config.Merged))
			e.Merged = p.OutputPaths(config.Merged)
		}
		if p.Supports(config.Split) {
			e.Modes = append(e.Modes, string(config.Split))
			e.Split = p.OutputPaths(config.Split)
		}
		entries = append(entries, e)
	}
	return entries
}

func runListAgents(cmd *cobra.Command, args []string) error {
	entries := agentEntries()
	if listAgentsJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	rows := [][]string{{"AGENT", "MODES", "MERGED", "SPLIT"}}
	for _, e := range entries {
		rows = append(rows, []string{e.ID, strings.Join(e.Modes, ","), orDash(e.Merged), orDash(e.Split)})
	}
	out.Table(rows)
	return nil
}

func orDash(paths []string) string {
	if len(paths) == 0 {
		return "-"
	}
	return strings.Join(paths, ", ")
}
