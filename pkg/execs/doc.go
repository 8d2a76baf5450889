// Package execs provides utilities for executing external commands.
//
// It is used by the `git` package to query the repository for its root and
// tracked files, and traces every execution with OpenTelemetry.
package execs
