// Package workflow runs an ordered list of catalog commands across repositories.
// Workflows are declared in YAML or JSON; every step is resolved before the first one runs.
package workflow
