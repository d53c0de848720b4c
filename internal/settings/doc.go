// Package settings manages user-level preferences stored at ~/.aicm/config.yaml.
// Values can also come from AICM_* environment variables; the color mode and
// the default project config path are the only keys the CLI reads.
package settings
