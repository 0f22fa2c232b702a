package shared

import (
	"context"

	"github.com/temirov/rex/internal/execshell"
)

// RepositoryDiscoverer locates working trees beneath a set of roots.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string, maximumDepth int) ([]string, error)
}

// ScriptExecutor runs a resolved shell script inside a working directory.
type ScriptExecutor interface {
	ExecuteScript(executionContext context.Context, script string, workingDirectory string) (execshell.ExecutionResult, error)
}
