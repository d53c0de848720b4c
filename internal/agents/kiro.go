package agents

import (
	"fmt"

	"github.com/gobwas/glob"
	"go.yaml.in/yaml/v3"

	"github.com/aicm-dev/aicm/internal/config"
	"github.com/aicm-dev/aicm/internal/docs"
)

// kiroProfile writes one steering file per document. A document matching
// an inclusion rule gets the rule's front matter; the first matching rule wins.
type kiroProfile struct {
	layout
}

type compiledRule struct {
	patterns []glob.Glob
	rule     config.InclusionRule
}

func (k *kiroProfile) Render(documents []docs.Document, opts RenderOptions) ([]Artifact, error) {
	rules, err := compileRules(opts.Settings)
	if err != nil {
		return nil, err
	}

	artifacts := make([]Artifact, 0, len(documents))
	for _, d := range docs.Split(documents) {
		body := d.Content
		if rule, ok := matchRule(rules, d.Path); ok {
			header, err := inclusionHeader(rule)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", d.Path, err)
			}
			body = header + "\n" + body
		}
		artifacts = append(artifacts, k.splitArtifact(d, body))
	}
	return artifacts, nil
}

// Check reports rules that cannot be compiled or rendered.
func (k *kiroProfile) Check(opts RenderOptions) Findings {
	var f Findings
	if opts.Settings == nil || opts.Settings.SplitConfig == nil {
		return f
	}
	for i, rule := range opts.Settings.SplitConfig.Rules {
		if len(rule.FilePatterns) == 0 {
			f.Warnings = append(f.Warnings, fmt.Sprintf("split_config.rules[%d] has no file_patterns and never matches", i))
		}
		for _, p := range rule.FilePatterns {
			if _, err := glob.Compile(p); err != nil {
				f.Errors = append(f.Errors, fmt.Sprintf("split_config.rules[%d]: invalid pattern %q: %v", i, p, err))
			}
		}
		if _, err := inclusionHeader(rule); err != nil {
			f.Errors = append(f.Errors, fmt.Sprintf("split_config.rules[%d]: %v", i, err))
		}
	}
	return f
}

func compileRules(settings *config.AdvancedSetting) ([]compiledRule, error) {
	if settings == nil || settings.SplitConfig == nil {
		return nil, nil
	}
	rules := make([]compiledRule, 0, len(settings.SplitConfig.Rules))
	for i, rule := range settings.SplitConfig.Rules {
		cr := compiledRule{rule: rule}
		for _, p := range rule.FilePatterns {
			g, err := glob.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("split_config.rules[%d]: invalid pattern %q: %w", i, p, err)
			}
			cr.patterns = append(cr.patterns, g)
		}
		rules = append(rules, cr)
	}
	return rules, nil
}

func matchRule(rules []compiledRule, docPath string) (config.InclusionRule, bool) {
	for _, r := range rules {
		for _, g := range r.patterns {
			if g.Match(docPath) {
				return r.rule, true
			}
		}
	}
	return config.InclusionRule{}, false
}

// inclusionHeader renders the steering front matter for rule.
func inclusionHeader(rule config.InclusionRule) (string, error) {
	fields := []*yaml.Node{scalar("inclusion", 0), scalar(string(rule.Inclusion), 0)}
	switch rule.Inclusion {
	case config.InclusionAlways, config.InclusionManual:
	case config.InclusionFileMatch:
		if rule.MatchPattern == "" {
			return "", fmt.Errorf("inclusion fileMatch requires match_pattern")
		}
		fields = append(fields, scalar("fileMatchPattern", 0), scalar(rule.MatchPattern, yaml.DoubleQuotedStyle))
	default:
		return "", fmt.Errorf("unknown inclusion %q", rule.Inclusion)
	}

	data, err := yaml.Marshal(&yaml.Node{Kind: yaml.MappingNode, Content: fields})
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	return "---\n" + string(data) + "---", nil
}

func scalar(value string, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: style}
}
