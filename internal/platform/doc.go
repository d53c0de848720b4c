// Package platform provides the filesystem operations used when writing and
// removing generated files: permission-normalized writes and best-effort
// removal that records what was deleted and what could not be.
// Chmod is a no-op on Windows.
package platform
