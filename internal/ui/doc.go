// Package ui renders console text: aligned rows, version trees, help screens,
// and one-line progress messages for scripts run inside repositories.
package ui
