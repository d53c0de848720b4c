// Package docs collects Markdown documents from a docs directory and
// formats them as one merged body or a list of per-document bodies.
package docs
