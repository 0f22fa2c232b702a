package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/rex/internal/execshell"
	"github.com/temirov/rex/internal/repos/discovery"
	"github.com/temirov/rex/internal/repos/shared"
	"github.com/temirov/rex/internal/ui"
)

// ResolveRepositoryDiscoverer returns the provided discoverer or a filesystem-backed default.
func ResolveRepositoryDiscoverer(existing shared.RepositoryDiscoverer) shared.RepositoryDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFilesystemRepositoryDiscoverer()
}

// ResolveScriptExecutor returns the provided executor or constructs a shell-backed default.
// A non-nil consoleLogger receives human-readable command lifecycle messages.
func ResolveScriptExecutor(existing shared.ScriptExecutor, logger *zap.Logger, consoleLogger *zap.Logger) (shared.ScriptExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	var observer execshell.CommandEventObserver
	if consoleLogger != nil {
		observer = ui.NewConsoleCommandEventLogger(consoleLogger)
	}

	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
