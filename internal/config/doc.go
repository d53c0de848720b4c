// Package config loads and validates the project's ai-context.yaml.
//
// Loading happens in three stages. The raw YAML is checked against an
// embedded JSON Schema, decoded into Config (each agents entry becomes a
// SimpleSetting or an *AdvancedSetting), and then validated for empty
// required fields and a supported version. Each stage fails with its own
// error type: *NotFoundError, *ParseError or *ValidationError.
package config
