// Package cli constructs the rex command-line interface, wiring the Cobra
// command hierarchy, configuration loader, and structured logging primitives.
// Repository discovery, catalog commands, and project version and usage screens
// are registered as subcommands of a single root command.
package cli
