package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/rex/internal/catalog"
	flagutils "github.com/temirov/rex/internal/utils/flags"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveCatalog(existing *catalog.Catalog) *catalog.Catalog {
	if existing != nil {
		return existing
	}
	return catalog.NewDefaultCatalog()
}

// resolveImplementedCommand substitutes assignments into the tool/action template.
// Assignments the template does not use and empty commands are rejected.
func resolveImplementedCommand(commandCatalog *catalog.Catalog, arguments []string, assignments []string) (string, error) {
	toolName := catalog.ToolName(arguments[0])
	actionName := catalog.ActionName(arguments[1])

	values, assignmentsError := flagutils.ParseAssignments(assignments)
	if assignmentsError != nil {
		return "", assignmentsError
	}

	if unexpectedError := commandCatalog.RejectUnexpectedValues(toolName, actionName, values); unexpectedError != nil {
		return "", unexpectedError
	}

	resolvedCommand, resolveError := commandCatalog.Resolve(toolName, actionName, values)
	if resolveError != nil {
		return "", resolveError
	}
	if implementedError := catalog.RequireImplemented(toolName, actionName, resolvedCommand); implementedError != nil {
		return "", implementedError
	}
	return resolvedCommand, nil
}
