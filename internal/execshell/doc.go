// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and runs resolved catalog commands through a
// POSIX shell in a testable manner.
package execshell
