// Package cleanup removes the generated files of agents that are disabled
// in the current config.
package cleanup

import (
	"github.com/aicm-dev/aicm/internal/agents"
	"github.com/aicm-dev/aicm/internal/config"
)

// Report describes what cleanup did for one agent. Warnings are removal
// failures; they never make the run fail.
type Report struct {
	Agent    agents.ID
	Removed  []string
	Warnings []string
}

// Disabled cleans up every known agent that is not enabled in cfg. Agents
// absent from cfg count as disabled. Only agents with something to report
// are returned.
func Disabled(cfg *config.Config, root string) []Report {
	var reports []Report
	for _, p := range agents.All() {
		if cfg.Agent(string(p.ID())).IsEnabled() {
			continue
		}
		if r := Agent(p, root); len(r.Removed) > 0 || len(r.Warnings) > 0 {
			reports = append(reports, r)
		}
	}
	return reports
}

// Agent removes every artifact p may have written under root.
func Agent(p agents.Profile, root string) Report {
	removal := p.Cleanup(root)
	return Report{
		Agent:    p.ID(),
		Removed:  removal.Removed,
		Warnings: removal.Warnings,
	}
}
