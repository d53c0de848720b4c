// Package cli defines the Cobra command tree for the aicm CLI. Each file
// in this package registers one top-level command (init, generate, validate,
// etc.) with the root command. Command implementations delegate to internal
// packages for the work and only handle flags, output and exit status.
package cli
