package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/aicm-dev/aicm/internal/config"
	"github.com/aicm-dev/aicm/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	generateAgent string
	generateWatch bool
)

func init() {
	generateCmd.Flags().StringVar(&generateAgent, "agent", "", "Generate for one enabled agent only (skips cleanup)")
	generateCmd.Flags().BoolVar(&generateWatch, "watch", false, "Regenerate when docs or the config change")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write context files for every enabled agent",
	Long: `Read the docs directory and write each enabled agent's context files.
Outputs of disabled agents are removed. The command exits non-zero if any
agent fails; the other agents are still generated.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, root, path, err := loadConfig()
	if err != nil {
		return err
	}

	summary, err := pipeline.Generate(cfg, pipeline.Options{Root: root, Agent: generateAgent})
	if err != nil {
		return err
	}
	printSummary(summary)

	if generateWatch {
		return watchAndGenerate(cmd.Context(), cfg, root, path, summary)
	}
	if summary.Failed() {
		return errReported
	}
	return nil
}

func printSummary(s *pipeline.Summary) {
	for _, c := range s.Cleanup {
		out.Info("Cleaned up %s (disabled)", c.Agent)
		for _, p := range c.Removed {
			out.Removed(p)
		}
		for _, w := range c.Warnings {
			out.Warn("%s: %s", c.Agent, w)
		}
	}

	for _, r := range s.Results {
		if r.Err != nil {
			out.Error("%s: %v", r.Agent, r.Err)
		} else {
			out.Success("%s (%s, %s)", r.Agent, r.Mode, out.Count(r.Docs, "doc", "docs"))
		}
		for _, p := range r.Removed {
			out.Removed(p)
		}
		for _, p := range r.Written() {
			out.Written(p)
		}
		for _, w := range r.Warnings {
			out.Warn("%s: %s", r.Agent, w)
		}
	}

	written := len(s.Written())
	if s.Failed() {
		out.Error("Generation finished with errors (%s written)", out.Count(written, "file", "files"))
		return
	}
	if len(s.Results) == 0 {
		out.Warn("No agents are enabled; nothing was generated")
		return
	}
	out.Success("Generated %s for %s", out.Count(written, "file", "files"), out.Count(len(s.Results), "agent", "agents"))
}

func watchAndGenerate(parent context.Context, cfg *config.Config, root, path string, last *pipeline.Summary) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	written := writtenSet(root, last)
	run := func() {
		current, err := config.Load(path)
		if err != nil {
			out.Error("%v", err)
			return
		}
		summary, err := pipeline.Generate(current, pipeline.Options{Root: root, Agent: generateAgent})
		if err != nil {
			out.Error("%v", err)
			return
		}
		printSummary(summary)
		written = writtenSet(root, summary)
	}

	out.Detail("Watching %s for changes (Ctrl+C to stop)", joinRel(root, docsDirs(cfg, root)))
	err := pipeline.Watch(ctx, pipeline.WatchOptions{
		Dirs:   docsDirs(cfg, root),
		Files:  []string{path},
		Ignore: func(p string) bool { return written[p] },
		OnError: func(err error) {
			out.Warn("watch error: %v", err)
		},
	}, run)
	out.Info("Stopped watching")
	return err
}

// docsDirs returns every existing docs directory the config reads from.
func docsDirs(cfg *config.Config, root string) []string {
	seen := map[string]bool{}
	add := func(p string) {
		dir := config.ResolvePath(root, p)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			seen[dir] = true
		}
	}
	add(cfg.BaseDocsDir)
	for _, id := range cfg.EnabledAgents() {
		add(cfg.EffectiveBaseDocsDir(id))
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

func writtenSet(root string, s *pipeline.Summary) map[string]bool {
	set := make(map[string]bool)
	for _, p := range s.Written() {
		set[filepath.Join(root, filepath.FromSlash(p))] = true
	}
	return set
}

func joinRel(root string, paths []string) string {
	rel := make([]string, len(paths))
	for i, p := range paths {
		rel[i] = relPath(root, p)
	}
	return strings.Join(rel, ", ")
}
