// Package agents defines the output profile of each supported AI coding
// assistant: where its context files live, which output modes it accepts,
// how documents are wrapped, and which files it owns for cleanup.
//
// Profiles are looked up by ID through the registry. Most are described by
// a layout value; claude and kiro add import lines and inclusion headers on
// top of that.
package agents
